package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"schema-generator/internal/decl"
	"schema-generator/internal/resource"
)

const filePerm = 0o644

// LoadFile loads and parses a resource document from the given path.
func LoadFile(path string) (*resource.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource file %s: %w", path, err)
	}

	return Parse(data)
}

// Read parses a resource document from r.
func Read(r io.Reader) (*resource.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource document: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML (or JSON) data into a resource set, keeping the
// documented order of resources and fields.
func Parse(data []byte) (*resource.Set, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resource YAML: %w", err)
	}

	set := resource.NewSet()

	// Empty input yields a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return set, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return set, nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping of resources, got %s", root.Line, kindName(root.Kind))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		r, err := set.Add(key.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}

		if err := parseFields(r, value); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func parseFields(r *resource.Resource, node *yaml.Node) error {
	if isNull(node) {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: resource %s: expected mapping of fields, got %s",
			node.Line, r.Name, kindName(node.Kind))
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var fd FieldDoc
		if err := value.Decode(&fd); err != nil {
			return fmt.Errorf("line %d: field %s.%s: %w", value.Line, r.Name, key.Value, err)
		}

		if err := r.AddField(key.Value, fd.Type, fd.Description); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}

	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// Marshal serializes a resource set to YAML, in set order.
func Marshal(set *resource.Set) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, r := range set.Resources() {
		fields := &yaml.Node{Kind: yaml.MappingNode}

		for _, f := range r.Fields {
			var value yaml.Node
			if err := value.Encode(FieldDoc{Type: f.RawType, Description: f.Description}); err != nil {
				return nil, fmt.Errorf("encoding field %s.%s: %w", r.Name, f.Name, err)
			}

			fields.Content = append(fields.Content, keyNode(f.Name), &value)
		}

		root.Content = append(root.Content, keyNode(r.Name), fields)
	}

	return encode(root)
}

// WriteFile writes a resource set to the given path.
func WriteFile(set *resource.Set, path string) error {
	data, err := Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write resource file %s: %w", path, err)
	}

	return nil
}

// MarshalDocument serializes declarations to YAML, schemas in emission order
// and fields in documented order.
func MarshalDocument(doc *decl.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, s := range doc.Schemas {
		fields := &yaml.Node{Kind: yaml.MappingNode}

		for _, f := range s.Fields {
			d := newDeclarationYAML(f.Declaration)
			d.Description = f.Description

			var value yaml.Node
			if err := value.Encode(d); err != nil {
				return nil, fmt.Errorf("encoding field %s.%s: %w", s.Name, f.Name, err)
			}

			fields.Content = append(fields.Content, keyNode(f.Name), &value)
		}

		root.Content = append(root.Content, keyNode(s.Name), fields)
	}

	return encode(root)
}

func keyNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func encode(root *yaml.Node) ([]byte, error) {
	if len(root.Content) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}
