package configuration

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("configuration: session not found")

// DefaultSessionTTL is the idle time after which a registered session expires.
const DefaultSessionTTL = 30 * time.Minute

// Registry keeps open sessions by id for transports that span requests.
// Each session is accessed by one caller at a time through With.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	ttl      time.Duration
	now      func() time.Time
}

type registryEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewRegistry returns a Registry expiring sessions idle for longer than ttl.
// A ttl of zero selects DefaultSessionTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*registryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides time.Now.
func (r *Registry) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// Add registers s under its id.
func (r *Registry) Add(s *Session) {
	if s == nil {
		return
	}
	r.mu.Lock()
	r.sessions[s.ID] = &registryEntry{session: s}
	r.mu.Unlock()
}

// With runs fn with exclusive access to the session called id.
func (r *Registry) With(id string, fn func(*Session) error) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.session == nil {
		return ErrSessionNotFound
	}
	return fn(entry.session)
}

// Remove discards the session called id. It reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		entry.mu.Lock()
		entry.session = nil
		entry.mu.Unlock()
	}
	return ok
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many
// were dropped. Sessions in use are skipped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, entry := range r.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.session == nil || entry.session.LastActivity().Before(cutoff) {
			entry.session = nil
			delete(r.sessions, id)
			removed++
		}
		entry.mu.Unlock()
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
