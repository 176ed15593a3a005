package gen

import (
	"strings"
	"text/template"

	"schema-generator/internal/common"
)

// templateData holds all data needed for the schema template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Types       []typeDecl
}

// typeDecl is one generated type: a struct for a schema, or a named string
// for a constrained field.
type typeDecl struct {
	Name string
	// Source is the documented name: "Story" or "Story.state".
	Source string
	IsEnum bool
	Values []enumValue
	Fields []fieldDecl
}

type enumValue struct {
	Name  string
	Value string
}

type fieldDecl struct {
	Comment  []string
	Name     string
	Type     string
	JSONName string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// name returns the identifier the import is referred to by.
func (s importSpec) name() string {
	if s.Alias != "" {
		return s.Alias
	}

	return common.PkgAlias(s.Path)
}

// typeRef is a Go type expression.
type typeRef struct {
	Name      string // Type name, qualified when imported
	IsPointer bool
	IsSlice   bool
	ElemRef   *typeRef // For slices, the element type
}

// String returns the full type string (e.g., "time.Time", "*Epic", "[]*Label").
func (t typeRef) String() string {
	var sb strings.Builder

	if t.IsPointer {
		sb.WriteString("*")
	}

	if t.IsSlice {
		sb.WriteString("[]")

		if t.ElemRef != nil {
			sb.WriteString(t.ElemRef.String())

			return sb.String()
		}
	}

	sb.WriteString(t.Name)

	return sb.String()
}

var schemaTemplate = template.Must(template.New("schemas").Parse(`// Code generated by schema-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{end}}
{{- range $t := .Types}}
{{if $t.IsEnum}}
// {{$t.Name}} lists the documented values of {{$t.Source}}.
type {{$t.Name}} string

const (
{{- range $t.Values}}
	{{.Name}} {{$t.Name}} = {{printf "%q" .Value}}
{{- end}}
)

// Valid reports whether v is a documented {{$t.Name}} value.
func (v {{$t.Name}}) Valid() bool {
	switch v {
	case {{range $i, $v := $t.Values}}{{if $i}}, {{end}}{{$v.Name}}{{end}}:
		return true
	default:
		return false
	}
}
{{else}}
// {{$t.Name}} is the {{$t.Source}} resource.
type {{$t.Name}} struct {
{{- range $i, $f := $t.Fields}}
{{- if and $i $f.Comment}}
{{end}}
{{- range $f.Comment}}
	// {{.}}
{{- end}}
	{{$f.Name}} {{$f.Type}} ` + "`" + `json:"{{$f.JSONName}}"` + "`" + `
{{- end}}
}
{{end}}
{{- end}}
`))
