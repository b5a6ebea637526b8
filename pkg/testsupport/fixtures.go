package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/internal/store/memory"
	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

// Fixture names shipped with this package.
const (
	ArticleSchema            = "article.schema.json"
	ArticleConfiguration     = "article.configuration.json"
	ArticleConfigurationYAML = "article.configuration.yaml"
	ArticleUID               = "api::article.article"
)

// Fixture returns the absolute path of a file under this package's testdata
// directory so tests in any package can share the same fixtures.
func Fixture(name string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", name)
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// LoadDocument reads a fixture into a source.Document using a file source.
func LoadDocument(t *testing.T, path string) source.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (source.Document, error) {
	if path == "" {
		return source.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := source.NewDocument(source.FromFile(path), data)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadSchema parses a schema fixture.
func MustLoadSchema(t *testing.T, path string) schema.Schema {
	t.Helper()

	out, err := schema.Parse(LoadDocument(t, path))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return out
}

// MustLoadConfiguration parses a configuration fixture.
func MustLoadConfiguration(t *testing.T, path string) configuration.Configuration {
	t.Helper()

	out, err := configuration.Parse(LoadDocument(t, path))
	if err != nil {
		t.Fatalf("parse configuration: %v", err)
	}
	return out
}

// ArticleStore returns a memory store seeded with the article fixtures.
func ArticleStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.New()
	store.PutSchema(MustLoadSchema(t, Fixture(ArticleSchema)))
	store.PutConfiguration(MustLoadConfiguration(t, Fixture(ArticleConfiguration)))
	return store
}

// Notifications records every notification it receives.
type Notifications struct {
	mu    sync.Mutex
	items []configuration.Notification
}

// Notify implements configuration.Notifier.
func (n *Notifications) Notify(_ context.Context, item configuration.Notification) {
	n.mu.Lock()
	n.items = append(n.items, item)
	n.mu.Unlock()
}

// All returns the recorded notifications.
func (n *Notifications) All() []configuration.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]configuration.Notification(nil), n.items...)
}

// Events records published events. Err, when set, is returned by Publish.
type Events struct {
	mu    sync.Mutex
	items []configuration.Event
	Err   error
}

// Publish implements configuration.Publisher.
func (e *Events) Publish(_ context.Context, event configuration.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.items = append(e.items, event)
	return nil
}

// All returns the recorded events.
func (e *Events) All() []configuration.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]configuration.Event(nil), e.items...)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs a render function that writes to an io.Writer and
// returns both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
