// Package formlayout wires the loader, the OpenAPI importer and the
// document parsers behind a few constructors so callers can go from a source
// location to a schema or a stored configuration in one call.
package formlayout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-formlayout/internal/loader"
	internalParser "github.com/goliatone/go-formlayout/internal/openapi/parser"
	"github.com/goliatone/go-formlayout/pkg/configuration"
	pkgopenapi "github.com/goliatone/go-formlayout/pkg/openapi"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalLoader.New(source.NewLoaderOptions(options...))
}

// NewImporter constructs an OpenAPI importer backed by kin-openapi.
func NewImporter(options ...pkgopenapi.ImportOption) pkgopenapi.Importer {
	return internalParser.New(pkgopenapi.NewImportOptions(options...))
}

// SchemaRequest describes where a schema comes from. Either Source or
// Document must be set. A non-empty Component treats the document as OpenAPI
// and converts that component schema.
type SchemaRequest struct {
	Source    source.Source
	Document  *source.Document
	Component string
}

// Pipeline loads documents and turns them into schemas and configurations.
type Pipeline struct {
	loader   source.Loader
	importer pkgopenapi.Importer
}

// NewPipeline returns a Pipeline. Nil arguments select the defaults.
func NewPipeline(loader source.Loader, importer pkgopenapi.Importer) *Pipeline {
	if loader == nil {
		loader = NewLoader()
	}
	if importer == nil {
		importer = NewImporter()
	}
	return &Pipeline{loader: loader, importer: importer}
}

// Schema resolves req into a content-type schema.
func (p *Pipeline) Schema(ctx context.Context, req SchemaRequest) (schema.Schema, error) {
	doc, err := p.document(ctx, req.Source, req.Document)
	if err != nil {
		return schema.Schema{}, err
	}
	if component := strings.TrimSpace(req.Component); component != "" {
		out, err := p.importer.Schema(ctx, doc, component)
		if err != nil {
			return schema.Schema{}, fmt.Errorf("formlayout: import %s: %w", component, err)
		}
		return out, nil
	}
	return schema.Parse(doc)
}

// Configuration loads and parses a stored configuration document.
func (p *Pipeline) Configuration(ctx context.Context, src source.Source) (configuration.Configuration, error) {
	doc, err := p.document(ctx, src, nil)
	if err != nil {
		return configuration.Configuration{}, err
	}
	return configuration.Parse(doc)
}

func (p *Pipeline) document(ctx context.Context, src source.Source, doc *source.Document) (source.Document, error) {
	if doc != nil {
		return *doc, nil
	}
	if src == nil {
		return source.Document{}, errors.New("formlayout: source or document is required")
	}
	loaded, err := p.loader.Load(ctx, src)
	if err != nil {
		return source.Document{}, fmt.Errorf("formlayout: load: %w", err)
	}
	return loaded, nil
}
