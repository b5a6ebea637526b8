package main

import (
	"context"
	"encoding/json"
	"fmt"

	formlayout "github.com/goliatone/go-formlayout"
	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/internal/store/memory"
	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

type inputs struct {
	schema schema.Schema
	config configuration.Configuration
}

func (o *options) load(ctx context.Context) (inputs, error) {
	pipeline := formlayout.NewPipeline(nil, nil)

	sch, err := pipeline.Schema(ctx, formlayout.SchemaRequest{
		Source:    source.Parse(o.schema),
		Component: o.component,
	})
	if err != nil {
		return inputs{}, err
	}
	if o.layout == "" {
		return inputs{schema: sch, config: configuration.Default(sch)}, nil
	}
	cfg, err := pipeline.Configuration(ctx, source.Parse(o.layout))
	if err != nil {
		return inputs{}, err
	}
	if cfg.UID != sch.UID {
		return inputs{}, fmt.Errorf("configuration %s does not belong to schema %s", cfg.UID, sch.UID)
	}
	return inputs{schema: sch, config: cfg}, nil
}

// session opens a session over an in-memory copy of the inputs.
func (o *options) session(ctx context.Context, extra ...configuration.Option) (*configuration.Session, *memory.Store, error) {
	in, err := o.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := memory.New()
	store.PutSchema(in.schema)
	store.PutConfiguration(in.config)

	policy := config.Layout{Overflow: o.overflow}.OverflowPolicy()
	svc := configuration.NewStoreService(store, append([]configuration.Option{configuration.WithOverflowPolicy(policy)}, extra...)...)
	session, err := svc.Open(ctx, in.schema.UID)
	if err != nil {
		return nil, nil, err
	}
	return session, store, nil
}

func (o *options) writeJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
