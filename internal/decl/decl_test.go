package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/internal/resource"
	"schema-generator/internal/typedesc"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name     string
		in       *typedesc.Descriptor
		expected Declaration
	}{
		{
			name:     "scalar",
			in:       typedesc.Scalar("Integer"),
			expected: Declaration{Shape: ShapeScalar, Type: "Integer"},
		},
		{
			name:     "nullable scalar",
			in:       typedesc.Scalar("String").OrNull(),
			expected: Declaration{Shape: ShapeScalar, Type: "String", Nullable: true},
		},
		{
			name:     "constrained",
			in:       typedesc.ConstrainedString("started", "done"),
			expected: Declaration{Shape: ShapeConstrained, Allowed: []string{"started", "done"}},
		},
		{
			name:     "reference",
			in:       typedesc.Reference("Epic").OrNull(),
			expected: Declaration{Shape: ShapeNested, Target: "Epic", Nullable: true},
		},
		{
			name:     "self",
			in:       typedesc.SelfReference(),
			expected: Declaration{Shape: ShapeNested, Self: true},
		},
		{
			name: "collection of references",
			in:   typedesc.Collection(typedesc.Reference("Label")),
			expected: Declaration{
				Shape: ShapeCollection,
				Many:  true,
				Of:    &Declaration{Shape: ShapeNested, Target: "Label"},
			},
		},
		{
			name: "nullable collection of self",
			in:   typedesc.Collection(typedesc.SelfReference()).OrNull(),
			expected: Declaration{
				Shape:    ShapeCollection,
				Many:     true,
				Nullable: true,
				Of:       &Declaration{Shape: ShapeNested, Self: true},
			},
		},
		{
			name: "collection of constrained",
			in:   typedesc.Collection(typedesc.ConstrainedString("x", "y")),
			expected: Declaration{
				Shape: ShapeCollection,
				Many:  true,
				Of:    &Declaration{Shape: ShapeConstrained, Allowed: []string{"x", "y"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMap_Errors(t *testing.T) {
	_, err := Map(nil)
	require.Error(t, err)

	_, err = Map(&typedesc.Descriptor{Kind: typedesc.KindUnknown})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type kind unknown")

	_, err = Map(typedesc.Collection(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection element")
}

func TestMapResource_PreservesFieldOrder(t *testing.T) {
	set := resource.NewSet()
	r, err := set.Add("Story")
	require.NoError(t, err)

	for _, f := range [][2]string{
		{"zeta", "String"},
		{"alpha", "Story or null"},
		{"mid", "Enum(a, b)"},
		{"alpha_2", "String"},
	} {
		require.NoError(t, r.AddField(f[0], f[1], "doc "+f[0]))
	}

	require.NoError(t, set.Normalize())

	schema, err := MapResource(r)
	require.NoError(t, err)

	assert.Equal(t, "Story", schema.Name)
	require.Len(t, schema.Fields, 4)

	var names []string
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid", "alpha_2"}, names)
	assert.Equal(t, "doc alpha", schema.Fields[1].Description)
	assert.True(t, schema.Fields[1].Declaration.Self)
	assert.True(t, schema.Fields[1].Declaration.Nullable)
}

func TestMapResource_UnnormalizedField(t *testing.T) {
	r := resource.New("Story")
	require.NoError(t, r.AddField("name", "String", ""))

	_, err := MapResource(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Story.name")
}

func TestDocument_Lookup(t *testing.T) {
	doc := &Document{Schemas: []Schema{{Name: "Epic"}, {Name: "Story"}}}

	assert.Equal(t, []string{"Epic", "Story"}, doc.Names())
	require.NotNil(t, doc.Schema("Story"))
	assert.Nil(t, doc.Schema("Missing"))
	assert.Equal(t, "nested", ShapeNested.String())
}
