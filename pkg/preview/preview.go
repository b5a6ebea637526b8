// Package preview renders a static HTML picture of an edit-view layout: the
// grid rows with their field and filler cells, the main field and the
// fields still available for insertion.
package preview

import (
	"embed"
	"io"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/messages"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

//go:embed templates/*.tpl
var embedded embed.FS

// DefaultTemplate is the template rendered when none is configured.
const DefaultTemplate = "grid"

// TemplatesFS exposes the built-in templates so callers can extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// View is the data handed to the template.
type View struct {
	UID       string            `json:"uid"`
	Title     string            `json:"title"`
	Settings  settings.Settings `json:"settings"`
	Rows      []RowView         `json:"rows"`
	Available []string          `json:"available"`
}

// RowView is one grid row.
type RowView struct {
	Entries []EntryView `json:"entries"`
}

// EntryView is one grid cell.
type EntryView struct {
	Name   string `json:"name,omitempty"`
	Label  string `json:"label,omitempty"`
	Size   int    `json:"size"`
	Filler bool   `json:"filler"`
	Widget string `json:"widget,omitempty"`
}

// NewView assembles a View. Entries without their own label fall back to the
// metadata label.
func NewView(uid, title string, rows layout.Rows, s settings.Settings, available []string, metas schema.Metadatas) View {
	view := View{
		UID:       uid,
		Title:     title,
		Settings:  s,
		Rows:      make([]RowView, 0, len(rows)),
		Available: append([]string{}, available...),
	}
	for _, row := range rows {
		rv := RowView{Entries: make([]EntryView, 0, len(row))}
		for _, entry := range row {
			if entry.IsFiller() {
				rv.Entries = append(rv.Entries, EntryView{Size: entry.Size, Filler: true})
				continue
			}
			label := entry.Label
			if strings.TrimSpace(label) == "" {
				label = metas.Label(entry.Name)
			}
			rv.Entries = append(rv.Entries, EntryView{Name: entry.Name, Label: label, Size: entry.Size})
		}
		view.Rows = append(view.Rows, rv)
	}
	return view
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplates replaces the template filesystem.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.files = files
		}
	}
}

// WithTemplate selects the template name rendered by Render.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.name = trimmed
		}
	}
}

// WithWidgets sets the registry naming the widget of each placed attribute.
func WithWidgets(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.widgets = reg
		}
	}
}

// WithMessages sets the formatter used for static labels.
func WithMessages(f *messages.Formatter) Option {
	return func(r *Renderer) {
		if f != nil {
			r.messages = f
		}
	}
}

// Renderer turns Views into HTML.
type Renderer struct {
	files    fs.FS
	name     string
	messages *messages.Formatter
	widgets  *widgets.Registry
	engine   *engine
}

// New builds a Renderer over the embedded templates unless overridden.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		files:    TemplatesFS(),
		name:     DefaultTemplate,
		messages: messages.New(),
		widgets:  widgets.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	eng, err := newEngine(r.files)
	if err != nil {
		return nil, err
	}
	eng.globals(map[string]any{"labels": r.labels()})
	r.engine = eng
	return r, nil
}

// Render executes the configured template with view.
func (r *Renderer) Render(view View, out ...io.Writer) (string, error) {
	return r.engine.render(r.name, view, out...)
}

// RenderSession renders the working state of a session.
func (r *Renderer) RenderSession(s *configuration.Session, out ...io.Writer) (string, error) {
	view := NewView(s.UID, s.Title(), s.Rows(), s.Settings(), s.Available(), s.Metadatas())
	for _, row := range view.Rows {
		for i := range row.Entries {
			entry := &row.Entries[i]
			if attr, ok := s.Schema.Attributes.Get(entry.Name); ok && !entry.Filler {
				entry.Widget = r.widgets.Lookup(attr).Name
			}
		}
	}
	return r.Render(view, out...)
}

func (r *Renderer) labels() map[string]any {
	return map[string]any{
		"subtitle":   r.messages.Format(messages.KeyHeaderSubtitle, nil),
		"settings":   r.messages.Format(messages.KeySettings, nil),
		"entryTitle": r.messages.Format(messages.KeyEntryTitle, nil),
		"entryHint":  r.messages.Format(messages.KeyEntryTitleHint, nil),
		"view":       r.messages.Format(messages.KeyView, nil),
		"dragHint":   r.messages.Format(messages.KeyDragHint, nil),
		"insert":     r.messages.Format(messages.KeyInsertField, nil),
		"empty":      r.messages.Format(messages.KeyNoFieldsAvailable, nil),
	}
}
