package configuration

import (
	"errors"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// ErrNotFound is returned by stores for unknown content types.
var ErrNotFound = errors.New("configuration: not found")

// Default builds the configuration of a content type that has never been
// edited: every attribute except id is visible and placed first-fit at its
// default size.
func Default(sch schema.Schema) Configuration {
	metas := make(schema.Metadatas, sch.Attributes.Len())
	var rows layout.Rows
	for _, attr := range sch.Attributes.All() {
		if attr.Name == "id" {
			metas[attr.Name] = schema.FieldMetadata{Label: attr.Name}
			continue
		}
		metas[attr.Name] = schema.FieldMetadata{Visible: true, Editable: true, Label: attr.Name}
		next, err := layout.Insert(rows, layout.Field(attr.Name, widgets.Default().Size(attr), ""), layout.FirstFit)
		if err != nil {
			continue
		}
		rows = next
	}
	return Configuration{
		UID:       sch.UID,
		Layout:    layout.Panels(rows),
		Settings:  settings.Defaults(sch.Attributes),
		Metadatas: metas,
	}
}
