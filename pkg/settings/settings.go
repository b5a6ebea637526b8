// Package settings covers the display configuration that accompanies an
// edit-view layout, most notably which attribute acts as the main field used
// to label a record.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/schema"
)

// SortOrder is the default list ordering direction.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// MaxPageSize bounds Settings.PageSize.
const MaxPageSize = 100

// Settings is the flat display configuration of a content type.
type Settings struct {
	MainField        string    `json:"mainField" yaml:"mainField"`
	DefaultSortBy    string    `json:"defaultSortBy,omitempty" yaml:"defaultSortBy,omitempty"`
	DefaultSortOrder SortOrder `json:"defaultSortOrder,omitempty" yaml:"defaultSortOrder,omitempty"`
	PageSize         int       `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
	Searchable       bool      `json:"searchable" yaml:"searchable"`
	Filterable       bool      `json:"filterable" yaml:"filterable"`
	Bulkable         bool      `json:"bulkable" yaml:"bulkable"`
	DisplayName      string    `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// Option is a selectable value for a settings input.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var (
	// ErrIneligibleMainField is returned when the main field is unknown or
	// of an excluded type.
	ErrIneligibleMainField = errors.New("settings: main field is not eligible")
	// ErrInvalidSortOrder is returned for sort orders other than ASC/DESC.
	ErrInvalidSortOrder = errors.New("settings: invalid sort order")
	// ErrInvalidPageSize is returned for page sizes outside 1..MaxPageSize.
	ErrInvalidPageSize = errors.New("settings: invalid page size")
)

// excludedMainFieldTypes cannot label a record.
var excludedMainFieldTypes = map[schema.AttributeType]struct{}{
	schema.TypeDynamicZone: {},
	schema.TypeJSON:        {},
	schema.TypeText:        {},
	schema.TypeRelation:    {},
	schema.TypeComponent:   {},
	schema.TypeBoolean:     {},
	schema.TypeMedia:       {},
	schema.TypePassword:    {},
	schema.TypeRichText:    {},
	schema.TypeTimestamp:   {},
	schema.TypeBlocks:      {},
}

// CanBeMainField reports whether an attribute of type t may be the main field.
func CanBeMainField(t schema.AttributeType) bool {
	_, excluded := excludedMainFieldTypes[t]
	return !excluded
}

// EligibleMainFields lists the attributes that may act as the main field, in
// schema order. Label and value are both the attribute name.
func EligibleMainFields(attrs schema.Attributes) []Option {
	out := make([]Option, 0, attrs.Len())
	for _, attr := range attrs.All() {
		if !CanBeMainField(attr.Type) {
			continue
		}
		out = append(out, Option{Label: attr.Name, Value: attr.Name})
	}
	return out
}

// Defaults returns settings for a schema that has none stored yet.
func Defaults(attrs schema.Attributes) Settings {
	main := "id"
	if options := EligibleMainFields(attrs); len(options) > 0 {
		main = options[0].Value
		for _, option := range options {
			if option.Value != "id" {
				main = option.Value
				break
			}
		}
	}
	return Settings{
		MainField:        main,
		DefaultSortBy:    main,
		DefaultSortOrder: SortAsc,
		PageSize:         10,
		Searchable:       true,
		Filterable:       true,
		Bulkable:         true,
	}
}

// Validate checks s against attrs. An empty main field is allowed and means
// the record falls back to its id.
func Validate(s Settings, attrs schema.Attributes) error {
	var errs []error

	if name := strings.TrimSpace(s.MainField); name != "" && name != "id" {
		attr, ok := attrs.Get(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %q is not an attribute", ErrIneligibleMainField, name))
		case !CanBeMainField(attr.Type):
			errs = append(errs, fmt.Errorf("%w: %q has type %s", ErrIneligibleMainField, name, attr.Type))
		}
	}

	switch s.DefaultSortOrder {
	case "", SortAsc, SortDesc:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSortOrder, s.DefaultSortOrder))
	}

	if s.PageSize < 0 || s.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPageSize, s.PageSize))
	}

	return errors.Join(errs...)
}
