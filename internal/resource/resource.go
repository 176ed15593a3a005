// Package resource holds the documented API resources a run operates on.
//
// A Set keeps resources in insertion order and each Resource keeps its fields
// in declaration order; both orders are significant for the generated output.
package resource

import (
	"errors"
	"fmt"

	"schema-generator/internal/typedesc"
)

// Field is one documented field of a resource.
type Field struct {
	Name        string
	RawType     string // type string as it appears in the documentation
	Description string
	// Type is set once the field has been normalized.
	Type *typedesc.Descriptor
}

// Resource is one documented API entity.
type Resource struct {
	Name   string
	Fields []*Field

	index map[string]int
}

// New creates an empty resource.
func New(name string) *Resource {
	return &Resource{Name: name, index: make(map[string]int)}
}

// AddField appends a field. Field names are unique within a resource.
func (r *Resource) AddField(name, rawType, description string) error {
	if name == "" {
		return fmt.Errorf("resource %s: empty field name", r.Name)
	}

	if _, ok := r.index[name]; ok {
		return fmt.Errorf("resource %s: duplicate field %q", r.Name, name)
	}

	r.index[name] = len(r.Fields)
	r.Fields = append(r.Fields, &Field{
		Name:        name,
		RawType:     rawType,
		Description: description,
	})

	return nil
}

// Field returns the named field, or nil.
func (r *Resource) Field(name string) *Field {
	i, ok := r.index[name]
	if !ok {
		return nil
	}

	return r.Fields[i]
}

// Set is an insertion-ordered collection of uniquely named resources.
type Set struct {
	resources []*Resource
	index     map[string]int
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add appends a new empty resource and returns it.
func (s *Set) Add(name string) (*Resource, error) {
	if name == "" {
		return nil, errors.New("empty resource name")
	}

	if _, ok := s.index[name]; ok {
		return nil, fmt.Errorf("duplicate resource %q", name)
	}

	r := New(name)
	s.index[name] = len(s.resources)
	s.resources = append(s.resources, r)

	return r, nil
}

// Get returns the named resource, or nil.
func (s *Set) Get(name string) *Resource {
	i, ok := s.index[name]
	if !ok {
		return nil
	}

	return s.resources[i]
}

// Resources returns the resources in insertion order.
func (s *Set) Resources() []*Resource {
	return s.resources
}

// Len returns the number of resources.
func (s *Set) Len() int {
	return len(s.resources)
}

// Known returns the set of resource names, as consumed by typedesc.Context.
func (s *Set) Known() map[string]struct{} {
	known := make(map[string]struct{}, len(s.resources))
	for _, r := range s.resources {
		known[r.Name] = struct{}{}
	}

	return known
}

// Normalize resolves the type of every field of every resource. It stops at
// the first malformed type and leaves the set untouched in that case.
func (s *Set) Normalize() error {
	known := s.Known()
	resolved := make([][]*typedesc.Descriptor, len(s.resources))

	for i, r := range s.resources {
		resolved[i] = make([]*typedesc.Descriptor, len(r.Fields))

		for j, f := range r.Fields {
			d, err := typedesc.Normalize(f.RawType, typedesc.Context{
				Resource: r.Name,
				Field:    f.Name,
				Known:    known,
			})
			if err != nil {
				return err
			}

			resolved[i][j] = d
		}
	}

	for i, r := range s.resources {
		for j, f := range r.Fields {
			f.Type = resolved[i][j]
		}
	}

	return nil
}
