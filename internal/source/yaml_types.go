package source

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"schema-generator/internal/decl"
)

// FieldDoc is the documented type and description of one field.
type FieldDoc struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for FieldDoc.
// Accepts either a bare type string or a {type, description} mapping.
func (f *FieldDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		*f = FieldDoc{Type: str}

		return nil

	case yaml.MappingNode:
		// Alias type avoids recursing into this method.
		type plain FieldDoc

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		if p.Type == "" {
			return errors.New("missing type")
		}

		*f = FieldDoc(p)

		return nil

	default:
		return fmt.Errorf("expected type string or mapping, got %v", kindName(node.Kind))
	}
}

// declarationYAML is the serialized form of a decl.Declaration.
type declarationYAML struct {
	Shape       string           `yaml:"shape"`
	Type        string           `yaml:"type,omitempty"`
	Allowed     []string         `yaml:"allowed,omitempty,flow"`
	Target      string           `yaml:"target,omitempty"`
	Self        bool             `yaml:"self,omitempty"`
	Nullable    bool             `yaml:"nullable,omitempty"`
	Many        bool             `yaml:"many,omitempty"`
	Of          *declarationYAML `yaml:"of,omitempty"`
	Description string           `yaml:"description,omitempty"`
}

func newDeclarationYAML(d decl.Declaration) *declarationYAML {
	out := &declarationYAML{
		Shape:    d.Shape.String(),
		Type:     d.Type,
		Allowed:  d.Allowed,
		Target:   d.Target,
		Self:     d.Self,
		Nullable: d.Nullable,
		Many:     d.Many,
	}

	if d.Of != nil {
		out.Of = newDeclarationYAML(*d.Of)
	}

	return out
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
