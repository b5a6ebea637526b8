package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
	"github.com/goliatone/go-formlayout/pkg/source"
)

// Configuration is the stored edit-view record of a content type. Layout
// keeps the panel grouping of the storage format; Sessions work on the
// normalized, flattened form.
type Configuration struct {
	UID        string                   `json:"uid" yaml:"uid"`
	Layout     []layout.Panel           `json:"layout" yaml:"layout"`
	Settings   settings.Settings        `json:"settings" yaml:"settings"`
	Metadatas  schema.Metadatas         `json:"metadatas,omitempty" yaml:"metadatas,omitempty"`
	Components map[string]Configuration `json:"components,omitempty" yaml:"components,omitempty"`
}

// Submission is the payload handed to a ConfigurationUpdater.
type Submission struct {
	Layout   layout.Rows       `json:"layout" yaml:"layout"`
	Settings settings.Settings `json:"settings" yaml:"settings"`
}

// ErrMissingUID is returned for configuration documents without a uid.
var ErrMissingUID = errors.New("configuration: uid is required")

// Rows normalizes the stored layout.
func (c Configuration) Rows(opts ...layout.Option) (layout.Rows, error) {
	rows, err := layout.Normalize(c.Layout, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuration: %s: %w", c.UID, err)
	}
	return rows, nil
}

// Apply returns a copy of c carrying the submitted layout and settings.
func (c Configuration) Apply(sub Submission) Configuration {
	out := c
	out.Layout = layout.Panels(sub.Layout)
	out.Settings = sub.Settings
	out.Metadatas = c.Metadatas.Clone()
	for name, meta := range out.Metadatas {
		if at, ok := sub.Layout.Find(name); ok {
			if entry, _ := sub.Layout.At(at); entry.Label != "" {
				meta.Label = entry.Label
				out.Metadatas[name] = meta
			}
		}
	}
	return out
}

// Parse decodes a configuration document. JSON is tried first, then YAML.
func Parse(doc source.Document) (Configuration, error) {
	return ParseBytes(doc.Raw(), doc.Location())
}

// ParseBytes decodes raw JSON or YAML. location only decorates errors.
func ParseBytes(data []byte, location string) (Configuration, error) {
	out, _, err := source.Decode[Configuration](data)
	if err != nil {
		return Configuration{}, fmt.Errorf("configuration: parse %s: %w", location, err)
	}
	if strings.TrimSpace(out.UID) == "" {
		return Configuration{}, fmt.Errorf("configuration: %s: %w", location, ErrMissingUID)
	}
	return out, nil
}
