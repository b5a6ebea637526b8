package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formlayout/pkg/openapi"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

// ErrComponentNotFound is returned when a named component is missing.
var ErrComponentNotFound = errors.New("openapi parser: component not found")

// Parser implements pkgopenapi.Importer using kin-openapi.
type Parser struct {
	options pkgopenapi.ImportOptions
}

var _ pkgopenapi.Importer = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ImportOptions) *Parser {
	return &Parser{options: options}
}

// Schemas converts every object component of doc, sorted by component name.
func (p *Parser) Schemas(ctx context.Context, doc source.Document) ([]schema.Schema, error) {
	components, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(components))
	for name, ref := range components {
		if ref != nil && ref.Value != nil && isObject(ref.Value) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]schema.Schema, 0, len(names))
	for _, name := range names {
		converted, err := p.convert(name, components[name].Value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// Schema converts the component called name.
func (p *Parser) Schema(ctx context.Context, doc source.Document, name string) (schema.Schema, error) {
	components, err := p.load(ctx, doc)
	if err != nil {
		return schema.Schema{}, err
	}
	ref, ok := components[name]
	if !ok || ref == nil || ref.Value == nil {
		return schema.Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	return p.convert(name, ref.Value)
}

func (p *Parser) load(ctx context.Context, doc source.Document) (openapi3.Schemas, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load %s: %w", doc.Location(), err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate %s: %w", doc.Location(), err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("openapi parser: %s declares no component schemas", doc.Location())
	}
	return spec.Components.Schemas, nil
}

func (p *Parser) convert(name string, src *openapi3.Schema) (schema.Schema, error) {
	if !isObject(src) {
		return schema.Schema{}, fmt.Errorf("openapi parser: component %q is not an object schema", name)
	}

	out := schema.Schema{
		UID:         p.uid(name, src),
		Kind:        schema.KindCollectionType,
		DisplayName: name,
	}
	if kind := stringExtension(src.Extensions, pkgopenapi.ExtensionKind); kind != "" {
		out.Kind = schema.Kind(kind)
	}
	if src.Title != "" {
		out.DisplayName = src.Title
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, field := range src.Required {
		required[field] = struct{}{}
	}

	for _, prop := range orderedProperties(src.Properties) {
		attr := convertProperty(prop.name, prop.ref)
		if _, ok := required[prop.name]; ok {
			attr.Required = true
		}
		out.Attributes.Set(attr)
	}

	if err := out.Validate(); err != nil {
		return schema.Schema{}, fmt.Errorf("openapi parser: component %q: %w", name, err)
	}
	return out, nil
}

func (p *Parser) uid(name string, src *openapi3.Schema) string {
	if uid := stringExtension(src.Extensions, pkgopenapi.ExtensionUID); uid != "" {
		return uid
	}
	return p.options.UIDPrefix + name
}

func isObject(src *openapi3.Schema) bool {
	if src == nil {
		return false
	}
	if src.Type != nil && src.Type.Is(openapi3.TypeObject) {
		return true
	}
	return src.Type == nil && len(src.Properties) > 0
}
