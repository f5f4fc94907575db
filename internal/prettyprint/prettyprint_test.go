package prettyprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncatedStrSlice(t *testing.T) {
	sl := []string{"A", "B", "C"}

	assert.Equal(t, "A, B, C", TruncatedStrSlice(sl, 3))
	assert.Equal(t, "A, B, C", TruncatedStrSlice(sl, 10))
	assert.Equal(t, "A, [...]", TruncatedStrSlice(sl, 1))
	assert.Equal(t, "", TruncatedStrSlice(nil, 2))
}
