// Package widgets decides which edit widget shows an attribute and how many
// grid columns it takes when first placed.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput      = "input"
	WidgetToggle     = "toggle"
	WidgetSelect     = "select"
	WidgetRelation   = "relation"
	WidgetMedia      = "media"
	WidgetDatePicker = "date-picker"
	WidgetNumber     = "number"
	WidgetWysiwyg    = "wysiwyg"
	WidgetJSONEditor = "json-editor"
	WidgetComponent  = "component"
)

// DefaultSize is the width of attributes no rule claims.
const DefaultSize = layout.GridColumns / 2

// Widget is a resolved widget name and its initial width.
type Widget struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Matcher decides whether a widget should handle the supplied attribute.
type Matcher func(attr schema.Attribute) bool

type rule struct {
	widget   Widget
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for attributes from registered matchers. Higher
// priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry holding only the built-in rules.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a matcher for the named widget. Sizes outside the grid are
// clamped to it.
func (r *Registry) Register(name string, size, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	if size < 1 {
		size = 1
	}
	if size > layout.GridColumns {
		size = layout.GridColumns
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		widget:   Widget{Name: trimmed, Size: size},
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for attr.
func (r *Registry) Resolve(attr schema.Attribute) (Widget, bool) {
	if r == nil {
		return Widget{}, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(attr) {
			return entry.widget, true
		}
	}
	return Widget{}, false
}

// Lookup resolves attr, falling back to a plain input of DefaultSize.
func (r *Registry) Lookup(attr schema.Attribute) Widget {
	if w, ok := r.Resolve(attr); ok {
		return w
	}
	return Widget{Name: WidgetInput, Size: DefaultSize}
}

// Size is the width given to attr when it is inserted.
func (r *Registry) Size(attr schema.Attribute) int {
	return r.Lookup(attr).Size
}

func ofType(types ...schema.AttributeType) Matcher {
	return func(attr schema.Attribute) bool {
		for _, t := range types {
			if attr.Type == t {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	full := layout.GridColumns
	half := layout.GridColumns / 2

	r.Register(WidgetWysiwyg, full, 90, ofType(schema.TypeRichText, schema.TypeBlocks))
	r.Register(WidgetJSONEditor, full, 90, ofType(schema.TypeJSON))
	r.Register(WidgetComponent, full, 90, ofType(schema.TypeComponent, schema.TypeDynamicZone))
	r.Register(WidgetToggle, half, 80, ofType(schema.TypeBoolean))
	r.Register(WidgetRelation, half, 70, ofType(schema.TypeRelation))
	r.Register(WidgetSelect, half, 70, func(attr schema.Attribute) bool {
		return attr.Type == schema.TypeEnumeration || len(attr.Enum) > 0
	})
	r.Register(WidgetMedia, half, 60, ofType(schema.TypeMedia))
	r.Register(WidgetDatePicker, half, 60, ofType(schema.TypeDate, schema.TypeDateTime, schema.TypeTime, schema.TypeTimestamp))
	r.Register(WidgetNumber, half, 50, ofType(schema.TypeInteger, schema.TypeBigInteger, schema.TypeFloat, schema.TypeDecimal))
}
