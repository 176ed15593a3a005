package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"schema-generator/internal/decl"
	"schema-generator/internal/ident"
)

// commentWidth is the column field descriptions are wrapped at.
const commentWidth = 73

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir is where the file is written. When set, code that fails to
	// format is written next to it for inspection.
	OutputDir string
	// Scalars maps documented scalar tokens to Go types.
	Scalars map[string]ScalarType
	// GenerateComments enables field comments from descriptions.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "api",
		Filename:         "schemas.go",
		Scalars:          DefaultScalars(),
		GenerateComments: true,
	}
}

// Generator generates Go types from a declaration document.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "schemas.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// IsKnownScalar reports whether token has an entry in the scalar table.
func (g *Generator) IsKnownScalar(token string) bool {
	_, ok := g.config.Scalars[token]

	return ok
}

// Generate renders doc as a single Go file. The same document always yields
// the same bytes.
func (g *Generator) Generate(doc *decl.Document) (*GeneratedFile, error) {
	if !token.IsIdentifier(g.config.PackageName) {
		return nil, fmt.Errorf("invalid package name %q", g.config.PackageName)
	}

	data, err := g.buildTemplateData(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := schemaTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// builder carries the state of one Generate call.
type builder struct {
	scalars map[string]ScalarType
	// types maps schema names to their Go type names.
	types map[string]string
	// declared holds every package-level name, keyed by Go name, with the
	// documented name it was derived from.
	declared map[string]string
	imports  map[string]importSpec
}

func (g *Generator) buildTemplateData(doc *decl.Document) (*templateData, error) {
	b := &builder{
		scalars:  g.config.Scalars,
		types:    make(map[string]string),
		declared: make(map[string]string),
		imports:  make(map[string]importSpec),
	}

	for _, s := range doc.Schemas {
		name := ident.Exported(s.Name)
		if name == "" {
			return nil, fmt.Errorf("schema %q has no Go identifier", s.Name)
		}

		if err := b.declare(name, s.Name); err != nil {
			return nil, err
		}

		b.types[s.Name] = name
	}

	data := &templateData{PackageName: g.config.PackageName}

	for _, s := range doc.Schemas {
		decls, err := b.schema(s, g.config.GenerateComments)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", s.Name, err)
		}

		data.Types = append(data.Types, decls...)
	}

	imports, err := b.sortedImports()
	if err != nil {
		return nil, err
	}

	data.Imports = imports

	return data, nil
}

func (b *builder) declare(goName, documented string) error {
	if prev, ok := b.declared[goName]; ok {
		return fmt.Errorf("name %s is used by both %q and %q", goName, prev, documented)
	}

	b.declared[goName] = documented

	return nil
}

// claim declares base, or base with the smallest numeric suffix that is not
// yet declared, and returns the declared name.
func (b *builder) claim(base, documented string) string {
	name := base
	for n := 2; ; n++ {
		if _, taken := b.declared[name]; !taken {
			b.declared[name] = documented

			return name
		}

		name = base + strconv.Itoa(n)
	}
}

// schema returns the declarations for one schema: its enum types in field
// order, then its struct.
func (b *builder) schema(s decl.Schema, comments bool) ([]typeDecl, error) {
	typeName := b.types[s.Name]
	st := typeDecl{Name: typeName, Source: s.Name}

	var enums []typeDecl

	fieldNames := make(map[string]string)

	for _, f := range s.Fields {
		name := ident.Exported(f.Name)
		if name == "" {
			return nil, fmt.Errorf("field %q has no Go identifier", f.Name)
		}

		if prev, ok := fieldNames[name]; ok {
			return nil, fmt.Errorf("field name %s is used by both %q and %q", name, prev, f.Name)
		}

		fieldNames[name] = f.Name

		if strings.ContainsAny(f.Name, "\"`,") {
			return nil, fmt.Errorf("field %q cannot be used as a json key", f.Name)
		}

		var enumName string

		if c := constrained(f.Declaration); c != nil {
			e, err := b.enum(typeName+name, s.Name+"."+f.Name, c.Allowed)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}

			enums = append(enums, e)
			enumName = e.Name
		}

		ref, note, err := b.typeOf(f.Declaration, typeName, enumName)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		field := fieldDecl{Name: name, Type: ref.String(), JSONName: f.Name}
		if comments {
			field.Comment = wrap(f.Description, commentWidth)
		}

		if note != "" {
			field.Comment = append(field.Comment, note)
		}

		st.Fields = append(st.Fields, field)
	}

	return append(enums, st), nil
}

// constrained returns the constrained declaration of a field, looking
// through one collection level.
func constrained(d decl.Declaration) *decl.Declaration {
	if d.Shape == decl.ShapeCollection && d.Of != nil {
		d = *d.Of
	}

	if d.Shape == decl.ShapeConstrained {
		return &d
	}

	return nil
}

func (b *builder) enum(base, source string, allowed []string) (typeDecl, error) {
	if len(allowed) == 0 {
		return typeDecl{}, errors.New("constrained string without values")
	}

	name := b.claim(base, source)
	e := typeDecl{Name: name, Source: source, IsEnum: true}
	seen := make(map[string]bool)

	for i, v := range allowed {
		// Repeated values would be duplicate switch cases.
		if seen[v] {
			continue
		}

		seen[v] = true

		suffix := ident.Exported(v)
		if suffix == "" {
			suffix = "Value" + strconv.Itoa(i+1)
		}

		c := b.claim(name+suffix, source+" "+strconv.Quote(v))
		e.Values = append(e.Values, enumValue{Name: c, Value: v})
	}

	return e, nil
}

// typeOf returns the Go type of a declaration. The note, when not empty, is
// an extra comment line for the field.
func (b *builder) typeOf(d decl.Declaration, owner, enumName string) (typeRef, string, error) {
	switch d.Shape {
	case decl.ShapeScalar:
		st, ok := b.scalars[d.Type]
		note := ""

		if !ok {
			st = rawJSON
			note = "Documented type: " + d.Type + "."
		}

		if spec, ok := st.importFor(); ok {
			b.imports[spec.Path+" "+spec.Alias] = spec
		}

		return typeRef{Name: st.Type, IsPointer: d.Nullable && !st.nilable()}, note, nil
	case decl.ShapeConstrained:
		return typeRef{Name: enumName, IsPointer: d.Nullable}, "", nil
	case decl.ShapeNested:
		if d.Self {
			return typeRef{Name: owner, IsPointer: true}, "", nil
		}

		name, ok := b.types[d.Target]
		if !ok {
			return typeRef{}, "", fmt.Errorf("unknown schema %q", d.Target)
		}

		return typeRef{Name: name, IsPointer: d.Nullable}, "", nil
	case decl.ShapeCollection:
		if d.Of == nil {
			return typeRef{}, "", errors.New("collection without element")
		}

		elem, note, err := b.typeOf(*d.Of, owner, enumName)
		if err != nil {
			return typeRef{}, "", err
		}

		// []T already holds many self instances.
		if d.Of.Self {
			elem.IsPointer = false
		}

		return typeRef{IsSlice: true, ElemRef: &elem}, note, nil
	default:
		return typeRef{}, "", fmt.Errorf("unsupported declaration shape %s", d.Shape)
	}
}

func (b *builder) sortedImports() ([]importSpec, error) {
	specs := make([]importSpec, 0, len(b.imports))
	for _, spec := range b.imports {
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Path != specs[j].Path {
			return specs[i].Path < specs[j].Path
		}

		return specs[i].Alias < specs[j].Alias
	})

	byName := make(map[string]string)

	for _, spec := range specs {
		name := spec.name()
		if prev, ok := byName[name]; ok && prev != spec.Path {
			return nil, fmt.Errorf("package name %s is used by both %s and %s", name, prev, spec.Path)
		}

		byName[name] = spec.Path
	}

	return specs, nil
}

// wrap splits text into lines of at most width columns, breaking at spaces.
// Words longer than width get a line of their own.
func wrap(text string, width int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	return strings.Split(wordwrap.WrapString(text, uint(width)), "\n")
}
