// Package decl maps normalized field types to the declaration shapes handed
// to renderers.
//
// A renderer never inspects type descriptors: it receives a Document whose
// schemas are already in emission order, each with its fields in documented
// order, and every field reduced to one of four shapes.
package decl

import (
	"errors"
	"fmt"

	"schema-generator/internal/common"
	"schema-generator/internal/resource"
	"schema-generator/internal/typedesc"
)

// Shape is the declaration form of a field.
type Shape int

const (
	ShapeUnknown     Shape = iota
	ShapeScalar            // primitive token
	ShapeConstrained       // string restricted to a set of values
	ShapeNested            // one nested instance of a schema
	ShapeCollection        // many instances of the inner declaration
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeConstrained:
		return "constrained"
	case ShapeNested:
		return "nested"
	case ShapeCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// Declaration is the shape of one field, or of a collection element.
type Declaration struct {
	Shape Shape
	// Type is the scalar token (ShapeScalar).
	Type string
	// Allowed lists the permitted values (ShapeConstrained).
	Allowed []string
	// Target is the nested schema (ShapeNested). Empty when Self is set.
	Target string
	// Self marks a nested instance of the schema being declared.
	Self bool
	// Of is the element declaration (ShapeCollection).
	Of *Declaration
	// Many is always true for collections.
	Many     bool
	Nullable bool
}

// Field is a named field declaration.
type Field struct {
	Name        string
	Description string
	Declaration Declaration
}

// Schema is the declaration of one resource.
type Schema struct {
	Name   string
	Fields []Field
}

// Document is the full set of schemas in emission order.
type Document struct {
	Schemas []Schema
}

// Map converts a normalized descriptor into its declaration shape.
func Map(d *typedesc.Descriptor) (Declaration, error) {
	if d == nil {
		return Declaration{}, errors.New("nil type descriptor")
	}

	switch d.Kind {
	case typedesc.KindScalar:
		return Declaration{Shape: ShapeScalar, Type: d.Name, Nullable: d.Nullable}, nil

	case typedesc.KindConstrainedString:
		return Declaration{
			Shape:    ShapeConstrained,
			Allowed:  append([]string(nil), d.Allowed...),
			Nullable: d.Nullable,
		}, nil

	case typedesc.KindReference:
		return Declaration{Shape: ShapeNested, Target: d.Name, Nullable: d.Nullable}, nil

	case typedesc.KindSelfReference:
		return Declaration{Shape: ShapeNested, Self: true, Nullable: d.Nullable}, nil

	case typedesc.KindCollection:
		inner, err := Map(d.Elem)
		if err != nil {
			return Declaration{}, fmt.Errorf("collection element: %w", err)
		}

		return Declaration{Shape: ShapeCollection, Of: &inner, Many: true, Nullable: d.Nullable}, nil

	default:
		return Declaration{}, fmt.Errorf("unsupported type kind %s", d.Kind)
	}
}

// MapResource declares every field of a normalized resource, in order.
func MapResource(r *resource.Resource) (Schema, error) {
	schema := Schema{Name: r.Name, Fields: make([]Field, 0, len(r.Fields))}

	for _, f := range r.Fields {
		d, err := Map(f.Type)
		if err != nil {
			return Schema{}, fmt.Errorf("field %s.%s: %w", r.Name, f.Name, err)
		}

		schema.Fields = append(schema.Fields, Field{
			Name:        f.Name,
			Description: f.Description,
			Declaration: d,
		})
	}

	return schema, nil
}

// Schema returns the named schema, or nil.
func (d *Document) Schema(name string) *Schema {
	for i := range d.Schemas {
		if d.Schemas[i].Name == name {
			return &d.Schemas[i]
		}
	}

	return nil
}

// Names returns the schema names in emission order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Schemas))
	for i, s := range d.Schemas {
		names[i] = s.Name
	}

	return names
}
