package schema

// AttributeType names the kind of a content-type attribute.
type AttributeType string

const (
	TypeRelation    AttributeType = "relation"
	TypeText        AttributeType = "text"
	TypeString      AttributeType = "string"
	TypeEmail       AttributeType = "email"
	TypeUID         AttributeType = "uid"
	TypeRichText    AttributeType = "richtext"
	TypeBlocks      AttributeType = "blocks"
	TypeMedia       AttributeType = "media"
	TypeComponent   AttributeType = "component"
	TypeDynamicZone AttributeType = "dynamiczone"
	TypeJSON        AttributeType = "json"
	TypeBoolean     AttributeType = "boolean"
	TypePassword    AttributeType = "password"
	TypeTimestamp   AttributeType = "timestamp"
	TypeDate        AttributeType = "date"
	TypeDateTime    AttributeType = "datetime"
	TypeTime        AttributeType = "time"
	TypeInteger     AttributeType = "integer"
	TypeBigInteger  AttributeType = "biginteger"
	TypeFloat       AttributeType = "float"
	TypeDecimal     AttributeType = "decimal"
	TypeEnumeration AttributeType = "enumeration"
)

var knownTypes = map[AttributeType]struct{}{
	TypeRelation:    {},
	TypeText:        {},
	TypeString:      {},
	TypeEmail:       {},
	TypeUID:         {},
	TypeRichText:    {},
	TypeBlocks:      {},
	TypeMedia:       {},
	TypeComponent:   {},
	TypeDynamicZone: {},
	TypeJSON:        {},
	TypeBoolean:     {},
	TypePassword:    {},
	TypeTimestamp:   {},
	TypeDate:        {},
	TypeDateTime:    {},
	TypeTime:        {},
	TypeInteger:     {},
	TypeBigInteger:  {},
	TypeFloat:       {},
	TypeDecimal:     {},
	TypeEnumeration: {},
}

// Known reports whether t is one of the built-in attribute kinds. Custom
// field kinds decode fine but report false.
func (t AttributeType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Kind distinguishes the content-type families a schema can describe.
type Kind string

const (
	KindCollectionType Kind = "collectionType"
	KindSingleType     Kind = "singleType"
	KindComponent      Kind = "component"
)

// Attribute is one field definition of a content-type schema. Name is the
// key the attribute is stored under and never appears in its own payload.
type Attribute struct {
	Name       string        `json:"-" yaml:"-"`
	Type       AttributeType `json:"type" yaml:"type"`
	Required   bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Private    bool          `json:"private,omitempty" yaml:"private,omitempty"`
	Relation   string        `json:"relation,omitempty" yaml:"relation,omitempty"`
	Target     string        `json:"target,omitempty" yaml:"target,omitempty"`
	Component  string        `json:"component,omitempty" yaml:"component,omitempty"`
	Repeatable bool          `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Components []string      `json:"components,omitempty" yaml:"components,omitempty"`
	Enum       []string      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default    any           `json:"default,omitempty" yaml:"default,omitempty"`
}

// FieldMetadata carries per-attribute presentation flags for the edit view.
type FieldMetadata struct {
	Visible     bool   `json:"visible" yaml:"visible"`
	Editable    bool   `json:"editable,omitempty" yaml:"editable,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Metadatas maps attribute names to their presentation metadata.
type Metadatas map[string]FieldMetadata

// Visible reports the visibility flag for name. A missing entry counts as
// hidden.
func (m Metadatas) Visible(name string) bool {
	if m == nil {
		return false
	}
	meta, ok := m[name]
	return ok && meta.Visible
}

// Label returns the configured label for name, or name itself.
func (m Metadatas) Label(name string) string {
	if meta, ok := m[name]; ok && meta.Label != "" {
		return meta.Label
	}
	return name
}

// Clone returns an independent copy.
func (m Metadatas) Clone() Metadatas {
	if m == nil {
		return nil
	}
	out := make(Metadatas, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
