package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/simplesurance/ciconf/pkg/pipeline"
)

func testTree(t *testing.T) *pipeline.Project {
	t.Helper()

	root := pipeline.NewProject("ROOT", "Root", "root project")
	root.Params.Text("z.param", "last")
	root.Params.Text("a.param", "first")
	require.NoError(t, root.AddVcsRoot(pipeline.NewGitVcsRoot("VCS", "https://example.com/repo", "refs/heads/main", "+:*")))

	bt := pipeline.NewBuildType("ROOT_BUILD", "Build")
	bt.VCS.Root = "VCS"
	bt.VCS.CleanCheckout = true
	bt.AddSteps(pipeline.Step{Name: "test", Script: "go test ./..."})
	bt.Params.Password("env.SECRET", "s3cr3t", "a secret")
	bt.Params.Hidden("env.HIDDEN", "hidden", "")
	bt.Triggers = append(bt.Triggers, pipeline.ScheduleTrigger{Hour: 4, Timezone: "UTC", DaysOfWeek: "*", DaysOfMonth: "*", BranchFilter: "+:refs/heads/main"})
	bt.Features = append(bt.Features, pipeline.Feature{Type: "golang", Params: map[string]string{"test.format": "json"}})
	require.NoError(t, root.AddBuildType(bt))

	sp := pipeline.NewProject("ROOT_SUB", "Sub", "")
	require.NoError(t, sp.AddBuildType(pipeline.NewBuildType("ROOT_SUB_BUILD", "Sub Build")))
	require.NoError(t, root.AddSubProject(sp))

	return root
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml, json, toml")
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(testTree(t), Options{})

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, "ROOT", doc.Project.ID)

	require.Len(t, doc.Project.Params, 2)
	assert.Equal(t, "a.param", doc.Project.Params[0].Name)
	assert.Equal(t, "z.param", doc.Project.Params[1].Name)

	require.Len(t, doc.Project.BuildTypes, 1)
	bt := doc.Project.BuildTypes[0]
	assert.True(t, bt.VCS.CleanCheckout)
	assert.Equal(t, []Param{
		{Name: "env.HIDDEN", Value: "hidden", Kind: "hidden"},
		{Name: "env.SECRET", Value: secretMask, Kind: "password", Description: "a secret"},
	}, bt.Params)

	require.Len(t, doc.Project.SubProjects, 1)
	assert.Equal(t, "ROOT_SUB_BUILD", doc.Project.SubProjects[0].BuildTypes[0].ID)
}

func TestNewDocumentRevealSecrets(t *testing.T) {
	doc := NewDocument(testTree(t), Options{RevealSecrets: true})
	assert.Equal(t, "s3cr3t", doc.Project.BuildTypes[0].Params[1].Value)
}

func TestWriteRoundTrip(t *testing.T) {
	expected := NewDocument(testTree(t), Options{})

	decoders := map[Format]func([]byte, any) error{
		FormatYAML: yaml.Unmarshal,
		FormatJSON: json.Unmarshal,
		FormatTOML: toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, testTree(t), format, Options{}))

			var got Document
			require.NoError(t, decode(buf.Bytes(), &got))

			if diff := cmp.Diff(expected.Project.BuildTypes[0].Params, got.Project.BuildTypes[0].Params); diff != "" {
				t.Errorf("params differ (-want +got):\n%s", diff)
			}
			assert.Equal(t, expected.Project.ID, got.Project.ID)
			assert.Equal(t, expected.Project.SubProjects[0].ID, got.Project.SubProjects[0].ID)
			assert.Equal(t, expected.Project.BuildTypes[0].Triggers, got.Project.BuildTypes[0].Triggers)
		})
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	for _, f := range Formats() {
		t.Run(f, func(t *testing.T) {
			var buf1, buf2 bytes.Buffer

			require.NoError(t, Write(&buf1, testTree(t), Format(f), Options{}))
			require.NoError(t, Write(&buf2, testTree(t), Format(f), Options{}))

			assert.Equal(t, buf1.String(), buf2.String())
			assert.NotContains(t, buf1.String(), "s3cr3t")
		})
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, testTree(t), Format("xml"), Options{}))
}
