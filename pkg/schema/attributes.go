package schema

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Attributes is an insertion-ordered mapping of attribute name to Attribute.
// The zero value is an empty, readable mapping.
type Attributes struct {
	m *orderedmap.OrderedMap[string, Attribute]
}

// NewAttributes builds an ordered mapping from attrs, keeping their order.
// Later duplicates replace earlier values in place.
func NewAttributes(attrs ...Attribute) Attributes {
	out := Attributes{m: orderedmap.New[string, Attribute]()}
	for _, attr := range attrs {
		out.m.Set(attr.Name, attr)
	}
	return out
}

// Set inserts or replaces attr under attr.Name. New names are appended.
func (a *Attributes) Set(attr Attribute) {
	if a.m == nil {
		a.m = orderedmap.New[string, Attribute]()
	}
	a.m.Set(attr.Name, attr)
}

// Get returns the attribute stored under name.
func (a Attributes) Get(name string) (Attribute, bool) {
	if a.m == nil {
		return Attribute{}, false
	}
	return a.m.Get(name)
}

// Has reports whether name is declared.
func (a Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	if a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Names returns the attribute names in declaration order.
func (a Attributes) Names() []string {
	if a.m == nil {
		return nil
	}
	out := make([]string, 0, a.m.Len())
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// All returns the attributes in declaration order.
func (a Attributes) All() []Attribute {
	if a.m == nil {
		return nil
	}
	out := make([]Attribute, 0, a.m.Len())
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object in declaration order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	if a.m == nil {
		return []byte("{}"), nil
	}
	return a.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		a.m = nil
		return nil
	}

	raw := orderedmap.New[string, Attribute]()
	if err := raw.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("schema: decode attributes: %w", err)
	}

	out := orderedmap.New[string, Attribute]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		attr := pair.Value
		attr.Name = pair.Key
		out.Set(pair.Key, attr)
	}
	a.m = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping node, keeping key order.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		a.m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: attributes must be a mapping (line %d)", node.Line)
	}

	out := orderedmap.New[string, Attribute]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var attr Attribute
		if err := node.Content[i+1].Decode(&attr); err != nil {
			return fmt.Errorf("schema: decode attribute %q: %w", key, err)
		}
		attr.Name = key
		out.Set(key, attr)
	}
	a.m = out
	return nil
}

// MarshalYAML encodes the mapping as an ordered YAML mapping node.
func (a Attributes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, attr := range a.All() {
		var value yaml.Node
		if err := value.Encode(attr); err != nil {
			return nil, fmt.Errorf("schema: encode attribute %q: %w", attr.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Name},
			&value,
		)
	}
	return node, nil
}
