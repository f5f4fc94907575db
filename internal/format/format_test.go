package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRows(t *testing.T, format string, withHeader bool) string {
	t.Helper()

	var buf bytes.Buffer

	f := New(format, []string{"id", "name"}, withHeader, &buf)
	require.NoError(t, f.WriteRow("A", "Build A"))
	require.NoError(t, f.WriteRow("B", nil))
	require.NoError(t, f.Flush())

	return buf.String()
}

func TestCSV(t *testing.T) {
	assert.Equal(t, "id,name\nA,Build A\nB,\n", writeRows(t, "csv", true))
	assert.Equal(t, "A,Build A\nB,\n", writeRows(t, "csv", false))
}

func TestJSON(t *testing.T) {
	assert.JSONEq(t,
		`[{"id": "A", "name": "Build A"}, {"id": "B", "name": null}]`,
		writeRows(t, "json", false),
	)
}

func TestPlain(t *testing.T) {
	out := writeRows(t, "plain", true)
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "Build A")
	assert.Len(t, bytes.Split([]byte(out), []byte("\n")), 4)
}
