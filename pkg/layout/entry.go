package layout

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formlayout/pkg/schema"
)

// GridColumns is the width of a row in grid units.
const GridColumns = 12

// fillerWireName is how upstream payloads spell a filler entry. It only
// exists at the encoding boundary.
const fillerWireName = schema.ReservedName

// EntryKind tags an Entry as a placed attribute or a filler slot.
type EntryKind uint8

const (
	// KindAttribute is a placed attribute. It is the zero value so literal
	// entries default to it.
	KindAttribute EntryKind = iota
	// KindFiller pads a row up to GridColumns.
	KindFiller
)

func (k EntryKind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindFiller:
		return "filler"
	default:
		return fmt.Sprintf("EntryKind(%d)", uint8(k))
	}
}

// Entry occupies Size grid units within a row. Filler entries carry no name
// or label.
type Entry struct {
	Kind  EntryKind
	Name  string
	Size  int
	Label string
}

// Field returns an attribute entry.
func Field(name string, size int, label string) Entry {
	return Entry{Kind: KindAttribute, Name: name, Size: size, Label: label}
}

// Filler returns a filler entry of the given width.
func Filler(size int) Entry {
	return Entry{Kind: KindFiller, Size: size}
}

// IsFiller reports whether e is a filler slot.
func (e Entry) IsFiller() bool {
	return e.Kind == KindFiller
}

// Editable reports whether the editing surface may act on e.
func (e Entry) Editable() bool {
	return e.Kind == KindAttribute && e.Name != ""
}

type wireEntry struct {
	Name  string `json:"name" yaml:"name"`
	Size  int    `json:"size" yaml:"size"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

func (e Entry) wire() wireEntry {
	if e.IsFiller() {
		return wireEntry{Name: fillerWireName, Size: e.Size}
	}
	return wireEntry{Name: e.Name, Size: e.Size, Label: e.Label}
}

func (w wireEntry) entry() Entry {
	if w.Name == fillerWireName {
		return Filler(w.Size)
	}
	return Field(w.Name, w.Size, w.Label)
}

// MarshalJSON encodes fillers using the upstream reserved name.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// UnmarshalJSON decodes the reserved filler name into KindFiller.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("layout: decode entry: %w", err)
	}
	*e = w.entry()
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (e Entry) MarshalYAML() (any, error) {
	return e.wire(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	var w wireEntry
	if err := node.Decode(&w); err != nil {
		return fmt.Errorf("layout: decode entry (line %d): %w", node.Line, err)
	}
	*e = w.entry()
	return nil
}
