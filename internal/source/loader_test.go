package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/internal/decl"
	"schema-generator/internal/resource"
)

func names(set *resource.Set) []string {
	var out []string
	for _, r := range set.Resources() {
		out = append(out, r.Name)
	}

	return out
}

func fieldNames(r *resource.Resource) []string {
	var out []string
	for _, f := range r.Fields {
		out = append(out, f.Name)
	}

	return out
}

func TestParse_PreservesOrder(t *testing.T) {
	yaml := `
Story:
  epic:
    type: Epic or null
    description: The epic the story belongs to.
  labels: Array(Label)
  archived: {type: Boolean, description: Whether the story is archived.}
Label:
  name:
    type: String
Epic:
  name: String
`
	set, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, []string{"Story", "Label", "Epic"}, names(set))

	story := set.Get("Story")
	assert.Equal(t, []string{"epic", "labels", "archived"}, fieldNames(story))

	epic := story.Field("epic")
	assert.Equal(t, "Epic or null", epic.RawType)
	assert.Equal(t, "The epic the story belongs to.", epic.Description)

	labels := story.Field("labels")
	assert.Equal(t, "Array(Label)", labels.RawType)
	assert.Empty(t, labels.Description)

	assert.Equal(t, "Boolean", story.Field("archived").RawType)
}

func TestParse_JSON(t *testing.T) {
	data := `{
  "Zeta": {"id": {"type": "Integer", "description": "ID."}},
  "Alpha": {"zeta": {"type": "Zeta"}, "state": {"type": "Enum(a, b)"}}
}`
	set, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha"}, names(set))
	assert.Equal(t, []string{"zeta", "state"}, fieldNames(set.Get("Alpha")))
}

func TestParse_EmptyAndNull(t *testing.T) {
	set, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	set, err = Parse([]byte("Empty:\nOther: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty", "Other"}, names(set))
	assert.Empty(t, set.Get("Empty").Fields)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "duplicate resource",
			yaml:     "A:\n  x: String\nA:\n  y: String\n",
			contains: `line 3: duplicate resource "A"`,
		},
		{
			name:     "duplicate field",
			yaml:     "A:\n  x: String\n  x: Integer\n",
			contains: `line 3: resource A: duplicate field "x"`,
		},
		{
			name:     "root is a list",
			yaml:     "- A\n- B\n",
			contains: "expected mapping of resources, got sequence",
		},
		{
			name:     "fields are a list",
			yaml:     "A:\n  - x\n",
			contains: "resource A: expected mapping of fields, got sequence",
		},
		{
			name:     "field mapping without type",
			yaml:     "A:\n  x:\n    description: no type\n",
			contains: "field A.x: missing type",
		},
		{
			name:     "field is a list",
			yaml:     "A:\n  x: [String]\n",
			contains: "field A.x: expected type string or mapping, got sequence",
		},
		{
			name:     "invalid yaml",
			yaml:     "A: [\n",
			contains: "failed to parse resource YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestWriteFile_LoadFile(t *testing.T) {
	set := resource.NewSet()

	story, err := set.Add("Story")
	require.NoError(t, err)
	require.NoError(t, story.AddField("labels", "Array[Label]", "Labels: one or more."))
	require.NoError(t, story.AddField("on", "Enum(yes, no)", ""))

	label, err := set.Add("Label")
	require.NoError(t, err)
	require.NoError(t, label.AddField("name", "String", "The name."))

	path := filepath.Join(t.TempDir(), "resources.yaml")
	require.NoError(t, WriteFile(set, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Story", "Label"}, names(loaded))
	assert.Equal(t, []string{"labels", "on"}, fieldNames(loaded.Get("Story")))
	assert.Equal(t, "Labels: one or more.", loaded.Get("Story").Field("labels").Description)
	assert.Equal(t, "Enum(yes, no)", loaded.Get("Story").Field("on").RawType)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	set, err := Read(strings.NewReader("A:\n  x: String\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, names(set))
}

func TestMarshalDocument(t *testing.T) {
	doc := &decl.Document{Schemas: []decl.Schema{
		{Name: "Epic", Fields: []decl.Field{
			{Name: "name", Description: "The name.", Declaration: decl.Declaration{Shape: decl.ShapeScalar, Type: "String"}},
		}},
		{Name: "Story", Fields: []decl.Field{
			{Name: "epic", Declaration: decl.Declaration{Shape: decl.ShapeNested, Target: "Epic", Nullable: true}},
			{Name: "parent", Declaration: decl.Declaration{Shape: decl.ShapeNested, Self: true}},
			{Name: "labels", Declaration: decl.Declaration{
				Shape: decl.ShapeCollection,
				Many:  true,
				Of:    &decl.Declaration{Shape: decl.ShapeNested, Target: "Label"},
			}},
			{Name: "state", Declaration: decl.Declaration{Shape: decl.ShapeConstrained, Allowed: []string{"a", "b"}}},
		}},
	}}

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	expected := `Epic:
  name:
    shape: scalar
    type: String
    description: The name.
Story:
  epic:
    shape: nested
    target: Epic
    nullable: true
  parent:
    shape: nested
    self: true
  labels:
    shape: collection
    many: true
    of:
      shape: nested
      target: Label
  state:
    shape: constrained
    allowed: [a, b]
`
	assert.Equal(t, expected, string(data))

	again, err := MarshalDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(resource.NewSet())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWriteFile_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteFile(resource.NewSet(), filepath.Join(blocker, "out.yaml"))
	require.Error(t, err)
}
