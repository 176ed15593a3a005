package gen

import (
	"strings"

	"schema-generator/internal/common"
)

// ScalarType is the Go rendering of a documented scalar token.
type ScalarType struct {
	// Type is the Go type expression, qualified by package name when it
	// needs an import (e.g. "time.Time").
	Type string `yaml:"type"`
	// Import is the package path Type needs, if any.
	Import string `yaml:"import,omitempty"`
}

// DefaultScalars returns the built-in scalar table.
func DefaultScalars() map[string]ScalarType {
	return map[string]ScalarType{
		"String":   {Type: "string"},
		"Integer":  {Type: "int64"},
		"Number":   {Type: "float64"},
		"Float":    {Type: "float64"},
		"Boolean":  {Type: "bool"},
		"Date":     {Type: "time.Time", Import: "time"},
		"DateTime": {Type: "time.Time", Import: "time"},
		"UUID":     {Type: "uuid.UUID", Import: "github.com/google/uuid"},
		"Object":   {Type: "map[string]any"},
	}
}

// rawJSON renders scalar tokens missing from the table.
var rawJSON = ScalarType{Type: "json.RawMessage", Import: "encoding/json"}

// qualifier returns the package name Type is qualified with, or "".
func (s ScalarType) qualifier() string {
	if s.Import == "" {
		return ""
	}

	expr := strings.TrimLeft(s.Type, "*[]")

	pkg, _, found := strings.Cut(expr, ".")
	if !found {
		return ""
	}

	return pkg
}

// importFor returns the import statement the scalar needs. An alias is set
// when the qualifier differs from the last element of the import path.
func (s ScalarType) importFor() (importSpec, bool) {
	if s.Import == "" {
		return importSpec{}, false
	}

	spec := importSpec{Path: s.Import}
	if q := s.qualifier(); q != "" && q != common.PkgAlias(s.Import) {
		spec.Alias = q
	}

	return spec, true
}

// nilable reports whether the zero value of the type already encodes null.
func (s ScalarType) nilable() bool {
	return strings.HasPrefix(s.Type, "map[") ||
		strings.HasPrefix(s.Type, "[]") ||
		strings.HasPrefix(s.Type, "*") ||
		s == rawJSON
}
