// Package load reads schema files into a schema.Manager.
//
// A schema file is YAML:
//
//	classes:
//	  - name: User
//	    fields:
//	      name: string
//	      age: uint16
//	  - name: Pet
//	    fields:
//	      name: string
//	relations:
//	  - from: Pet
//	    links: one
//	    name: owner
//	    to: User
//	    reverse: many
//	    reverse_name: pets
//	    prefetch: true
//
// Fields keep the order in which they are written. Relations are applied
// after all classes are registered, in file order.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Schema is a schema file as written.
type Schema struct {
	Classes   []*Class    `yaml:"classes"`
	Relations []*Relation `yaml:"relations,omitempty"`
}

// Class is a class declaration.
type Class struct {
	Name   string
	Fields []*Field
	Line   int
}

// Field is a scalar field declaration.
type Field struct {
	Name string
	Type string
	Line int
}

// Relation is a relation declaration. Links and Reverse are "one" or
// "many".
type Relation struct {
	From        string `yaml:"from"`
	Links       string `yaml:"links"`
	Name        string `yaml:"name"`
	To          string `yaml:"to"`
	Reverse     string `yaml:"reverse"`
	ReverseName string `yaml:"reverse_name"`
	Prefetch    bool   `yaml:"prefetch,omitempty"`
	Line        int    `yaml:"-"`
}

// UnmarshalYAML decodes a class, keeping the order of its fields.
func (c *Class) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "class", "name", "fields"); err != nil {
		return err
	}
	var raw struct {
		Name   string    `yaml:"name"`
		Fields yaml.Node `yaml:"fields"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	c.Name, c.Line = raw.Name, node.Line
	switch raw.Fields.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
	default:
		return &Error{Line: raw.Fields.Line, Err: fmt.Errorf("fields of class %q must be a mapping", c.Name)}
	}
	for i := 0; i+1 < len(raw.Fields.Content); i += 2 {
		k, v := raw.Fields.Content[i], raw.Fields.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return &Error{Line: v.Line, Err: fmt.Errorf("type of field %q must be a scalar", k.Value)}
		}
		c.Fields = append(c.Fields, &Field{Name: k.Value, Type: v.Value, Line: k.Line})
	}
	return nil
}

// MarshalYAML encodes a class with its fields in declaration order.
func (c *Class) MarshalYAML() (any, error) {
	fields := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range c.Fields {
		fields.Content = append(fields.Content, scalar(f.Name), scalar(f.Type))
	}
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalar("name"), scalar(c.Name), scalar("fields"), fields},
	}, nil
}

// UnmarshalYAML decodes a relation and records its line.
func (r *Relation) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "relation", "from", "links", "name", "to", "reverse", "reverse_name", "prefetch"); err != nil {
		return err
	}
	type plain Relation
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}
	r.Line = node.Line
	return nil
}

// checkKeys rejects mapping keys other than the known ones.
func checkKeys(node *yaml.Node, what string, known ...string) error {
	if node.Kind != yaml.MappingNode {
		return &Error{Line: node.Line, Err: fmt.Errorf("%s must be a mapping", what)}
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if !slices.Contains(known, k.Value) {
			return &Error{Line: k.Line, Err: fmt.Errorf("unknown %s key %q", what, k.Value)}
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

// UnmarshalSchema decodes the given buffer to a schema. Unknown top-level
// keys are rejected.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, err
	}
	return s, nil
}

// MarshalSchema encodes the schema into YAML that UnmarshalSchema reads
// back into an equivalent schema.
func MarshalSchema(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile reads and decodes a schema file.
func ReadFile(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := UnmarshalSchema(buf)
	if err != nil {
		return nil, withFile(path, err)
	}
	return s, nil
}
