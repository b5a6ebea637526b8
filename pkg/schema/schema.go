package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/source"
)

// Schema describes one content type (or component) and its attributes.
type Schema struct {
	UID         string     `json:"uid" yaml:"uid"`
	Kind        Kind       `json:"kind,omitempty" yaml:"kind,omitempty"`
	DisplayName string     `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Attributes  Attributes `json:"attributes" yaml:"attributes"`
}

// ReservedName is the attribute name layout payloads use for filler
// entries. No attribute may be declared with it.
const ReservedName = "_TEMP_"

var (
	// ErrEmptyUID is returned when a schema document omits its uid.
	ErrEmptyUID = errors.New("schema: uid is required")
	// ErrReservedName is returned for an attribute called ReservedName.
	ErrReservedName = errors.New("schema: attribute name is reserved")
)

// Validate checks the structural requirements of a schema.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.UID) == "" {
		return ErrEmptyUID
	}
	for _, attr := range s.Attributes.All() {
		if strings.TrimSpace(attr.Name) == "" {
			return fmt.Errorf("schema: %s declares an attribute with an empty name", s.UID)
		}
		if attr.Name == ReservedName {
			return fmt.Errorf("schema: %s attribute %q: %w", s.UID, attr.Name, ErrReservedName)
		}
		if attr.Type == "" {
			return fmt.Errorf("schema: %s attribute %q has no type", s.UID, attr.Name)
		}
	}
	return nil
}

// Parse decodes a schema document. JSON is tried first, then YAML.
func Parse(doc source.Document) (Schema, error) {
	return ParseBytes(doc.Raw(), doc.Location())
}

// ParseBytes decodes raw JSON or YAML. location only decorates errors.
func ParseBytes(data []byte, location string) (Schema, error) {
	out, _, err := source.Decode[Schema](data)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: parse %s: %w", location, err)
	}

	if err := out.Validate(); err != nil {
		return Schema{}, fmt.Errorf("schema: %s: %w", location, err)
	}
	return out, nil
}
