// Package memory is an in-process Store used by the CLI and by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

// Store keeps schemas and configurations in maps.
type Store struct {
	mu       sync.RWMutex
	schemas  map[string]schema.Schema
	configs  map[string]configuration.Configuration
	updates  int
	failWith error
}

var _ configuration.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		schemas: make(map[string]schema.Schema),
		configs: make(map[string]configuration.Configuration),
	}
}

// PutSchema registers a schema.
func (s *Store) PutSchema(sch schema.Schema) {
	s.mu.Lock()
	s.schemas[sch.UID] = sch
	s.mu.Unlock()
}

// PutConfiguration stores cfg as is.
func (s *Store) PutConfiguration(cfg configuration.Configuration) {
	s.mu.Lock()
	s.configs[cfg.UID] = cfg
	s.mu.Unlock()
}

// FailWith makes every subsequent call return err. nil restores normal
// behaviour.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	s.failWith = err
	s.mu.Unlock()
}

// Updates returns the number of successful UpdateConfiguration calls.
func (s *Store) Updates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// FetchSchema implements configuration.SchemaFetcher.
func (s *Store) FetchSchema(_ context.Context, uid string) (schema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return schema.Schema{}, s.failWith
	}
	sch, ok := s.schemas[uid]
	if !ok {
		return schema.Schema{}, fmt.Errorf("memory: schema %s: %w", uid, configuration.ErrNotFound)
	}
	return sch, nil
}

// FetchConfiguration implements configuration.ConfigurationFetcher. A
// content type with a schema but no stored configuration gets the default.
func (s *Store) FetchConfiguration(_ context.Context, uid string) (configuration.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return configuration.Configuration{}, s.failWith
	}
	return s.configurationLocked(uid)
}

// UpdateConfiguration implements configuration.ConfigurationUpdater.
func (s *Store) UpdateConfiguration(_ context.Context, uid string, sub configuration.Submission) (configuration.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return configuration.Configuration{}, s.failWith
	}
	current, err := s.configurationLocked(uid)
	if err != nil {
		return configuration.Configuration{}, err
	}
	next := current.Apply(sub)
	s.configs[uid] = next
	s.updates++
	return next, nil
}

func (s *Store) configurationLocked(uid string) (configuration.Configuration, error) {
	if cfg, ok := s.configs[uid]; ok {
		return cfg, nil
	}
	if sch, ok := s.schemas[uid]; ok {
		return configuration.Default(sch), nil
	}
	return configuration.Configuration{}, fmt.Errorf("memory: configuration %s: %w", uid, configuration.ErrNotFound)
}
