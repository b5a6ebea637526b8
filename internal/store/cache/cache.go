// Package cache fronts a configuration.Store with an in-process ristretto
// cache. Reads are served from the cache; updates write through and evict.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/schema"
)

// DefaultTTL bounds how long an entry may be served from the cache.
const DefaultTTL = 5 * time.Minute

// Store is a caching configuration.Store.
type Store struct {
	next   configuration.Store
	c      *ristretto.Cache[string, []byte]
	ttl    time.Duration
	logger *zap.Logger
}

var _ configuration.Store = (*Store)(nil)

// New wraps next. maxCostBytes caps the total size of cached documents.
func New(next configuration.Store, maxCostBytes int64, ttl time.Duration, logger *zap.Logger) (*Store, error) {
	if next == nil {
		return nil, errors.New("cache: backing store is required")
	}
	if maxCostBytes <= 0 {
		maxCostBytes = 16 << 20
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Store{next: next, c: c, ttl: ttl, logger: logger}, nil
}

// FetchSchema implements configuration.SchemaFetcher.
func (s *Store) FetchSchema(ctx context.Context, uid string) (schema.Schema, error) {
	var out schema.Schema
	if s.lookup(schemaKey(uid), &out) {
		return out, nil
	}
	out, err := s.next.FetchSchema(ctx, uid)
	if err != nil {
		return schema.Schema{}, err
	}
	s.store(schemaKey(uid), out)
	return out, nil
}

// FetchConfiguration implements configuration.ConfigurationFetcher.
func (s *Store) FetchConfiguration(ctx context.Context, uid string) (configuration.Configuration, error) {
	var out configuration.Configuration
	if s.lookup(configKey(uid), &out) {
		return out, nil
	}
	out, err := s.next.FetchConfiguration(ctx, uid)
	if err != nil {
		return configuration.Configuration{}, err
	}
	s.store(configKey(uid), out)
	return out, nil
}

// UpdateConfiguration implements configuration.ConfigurationUpdater.
func (s *Store) UpdateConfiguration(ctx context.Context, uid string, sub configuration.Submission) (configuration.Configuration, error) {
	s.c.Del(configKey(uid))
	out, err := s.next.UpdateConfiguration(ctx, uid, sub)
	if err != nil {
		return configuration.Configuration{}, err
	}
	s.store(configKey(uid), out)
	return out, nil
}

// Invalidate drops every cached entry of uid.
func (s *Store) Invalidate(uid string) {
	s.c.Del(schemaKey(uid))
	s.c.Del(configKey(uid))
}

// Close releases the cache.
func (s *Store) Close() {
	s.c.Close()
}

func (s *Store) lookup(key string, dst any) bool {
	raw, ok := s.c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("drop undecodable cache entry", zap.String("key", key), zap.Error(err))
		s.c.Del(key)
		return false
	}
	return true
}

func (s *Store) store(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("skip cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	s.c.SetWithTTL(key, raw, int64(len(raw)), s.ttl)
	s.c.Wait()
}

func schemaKey(uid string) string { return "schema:" + uid }
func configKey(uid string) string { return "configuration:" + uid }
