package openapi

import (
	"context"

	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

// Extension keys recognised on component and property schemas.
const (
	// ExtensionUID overrides the content-type uid of a component.
	ExtensionUID = "x-formlayout-uid"
	// ExtensionKind sets the schema kind (collectionType, singleType, component).
	ExtensionKind = "x-formlayout-kind"
	// ExtensionType forces the attribute type of a property.
	ExtensionType = "x-formlayout-type"
	// ExtensionOrder positions a property; lower values come first.
	ExtensionOrder = "x-order"
)

// Importer converts component schemas of an OpenAPI document into
// content-type schemas.
type Importer interface {
	// Schemas converts every object component of doc, sorted by name.
	Schemas(ctx context.Context, doc source.Document) ([]schema.Schema, error)
	// Schema converts the component called name.
	Schema(ctx context.Context, doc source.Document, name string) (schema.Schema, error)
}

// ImportOptions toggles importer behaviour.
type ImportOptions struct {
	// Validate runs OpenAPI document validation before conversion.
	Validate bool

	// AllowExternalRefs lets the loader follow $refs outside the document.
	AllowExternalRefs bool

	// UIDPrefix is prepended to component names that carry no explicit uid.
	UIDPrefix string
}

// ImportOption mutates ImportOptions during construction.
type ImportOption func(*ImportOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ImportOption {
	return func(opts *ImportOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs toggles resolution of external references.
func WithExternalRefs(enabled bool) ImportOption {
	return func(opts *ImportOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithUIDPrefix sets the prefix of derived uids, e.g. "api::".
func WithUIDPrefix(prefix string) ImportOption {
	return func(opts *ImportOptions) {
		opts.UIDPrefix = prefix
	}
}

// NewImportOptions applies options over the defaults.
func NewImportOptions(options ...ImportOption) ImportOptions {
	cfg := ImportOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
