// Package typedesc normalizes documented field type strings into type
// descriptors.
package typedesc

import (
	"strings"

	"schema-generator/internal/common"
)

// Kind represents the kind of a normalized field type.
type Kind int

const (
	KindUnknown           Kind = iota
	KindScalar                 // opaque primitive token, e.g. "String"
	KindConstrainedString      // Enum(a, b, c)
	KindReference              // another documented resource
	KindSelfReference          // the resource being defined
	KindCollection             // Array(X)
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindConstrainedString:
		return "constrained_string"
	case KindReference:
		return "reference"
	case KindSelfReference:
		return "self_reference"
	case KindCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

// Descriptor is the normalized semantic type of a field.
//
// Only the members relevant to Kind are set: Name for scalars and references,
// Allowed for constrained strings, Elem for collections.
type Descriptor struct {
	Kind     Kind
	Name     string      // Scalar token or Reference target
	Allowed  []string    // Allowed values of a constrained string, in declaration order
	Elem     *Descriptor // Element type of a collection
	Nullable bool
}

// Scalar returns a descriptor for an opaque primitive token.
func Scalar(token string) *Descriptor {
	return &Descriptor{Kind: KindScalar, Name: token}
}

// ConstrainedString returns a descriptor for an enumerated string type.
func ConstrainedString(allowed ...string) *Descriptor {
	return &Descriptor{Kind: KindConstrainedString, Allowed: allowed}
}

// Reference returns a descriptor nesting one instance of the target resource.
func Reference(target string) *Descriptor {
	return &Descriptor{Kind: KindReference, Name: target}
}

// SelfReference returns a descriptor nesting one instance of the owning resource.
func SelfReference() *Descriptor {
	return &Descriptor{Kind: KindSelfReference}
}

// Collection returns a descriptor for an ordered sequence of elem.
func Collection(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindCollection, Elem: elem}
}

// OrNull marks the descriptor nullable and returns it.
func (d *Descriptor) OrNull() *Descriptor {
	d.Nullable = true
	return d
}

// Target returns the resource a field nests, looking through one level of
// collection. The second result is false when the field nests no other
// resource; self references report false.
func (d *Descriptor) Target() (string, bool) {
	if d == nil {
		return "", false
	}

	switch d.Kind {
	case KindReference:
		return d.Name, true
	case KindCollection:
		if d.Elem != nil && d.Elem.Kind == KindReference {
			return d.Elem.Name, true
		}
	}

	return "", false
}

// IsSelf reports whether the field nests the owning resource, directly or as
// the element of a collection.
func (d *Descriptor) IsSelf() bool {
	if d == nil {
		return false
	}

	if d.Kind == KindCollection {
		return d.Elem != nil && d.Elem.Kind == KindSelfReference
	}

	return d.Kind == KindSelfReference
}

// Equal reports whether two descriptors are structurally identical.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == nil || o == nil {
		return d == o
	}

	if d.Kind != o.Kind || d.Name != o.Name || d.Nullable != o.Nullable {
		return false
	}

	if len(d.Allowed) != len(o.Allowed) {
		return false
	}

	for i := range d.Allowed {
		if d.Allowed[i] != o.Allowed[i] {
			return false
		}
	}

	return d.Elem.Equal(o.Elem)
}

// String renders the descriptor back in documentation syntax, e.g.
// "Array(Story) or null". Self references render as "self".
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}

	var sb strings.Builder

	switch d.Kind {
	case KindScalar, KindReference:
		sb.WriteString(d.Name)
	case KindSelfReference:
		sb.WriteString("self")
	case KindConstrainedString:
		sb.WriteString("Enum(")
		sb.WriteString(strings.Join(d.Allowed, ", "))
		sb.WriteString(")")
	case KindCollection:
		sb.WriteString("Array(")
		sb.WriteString(d.Elem.String())
		sb.WriteString(")")
	default:
		sb.WriteString(common.UnknownStr)
	}

	if d.Nullable {
		sb.WriteString(nullSuffix)
	}

	return sb.String()
}
