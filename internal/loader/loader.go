// Package loader reads documents named by a source.Source.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/goliatone/go-formlayout/pkg/source"
)

var (
	// ErrTooLarge is returned for documents over the configured byte limit.
	ErrTooLarge = errors.New("loader: document exceeds size limit")
	// ErrUnsupported is returned for source kinds the Loader cannot serve.
	ErrUnsupported = errors.New("loader: unsupported source")
)

// Loader implements source.Loader over files, an fs.FS and HTTP.
type Loader struct {
	files    fs.FS
	http     *http.Client
	maxBytes int64
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options source.LoaderOptions) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: options.RequestTimeout}
	}
	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = source.DefaultMaxBytes
	}
	return &Loader{files: options.FileSystem, http: client, maxBytes: maxBytes}
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return source.Document{}, err
	}
	if src.Location() == "" {
		return source.Document{}, fmt.Errorf("loader: %s source has no location", src.Kind())
	}

	body, err := l.open(ctx, src)
	if err != nil {
		return source.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, l.maxBytes+1))
	if err != nil {
		return source.Document{}, fmt.Errorf("loader: read %s: %w", src.Location(), err)
	}
	if int64(len(data)) > l.maxBytes {
		return source.Document{}, fmt.Errorf("loader: %s: %w (%d bytes)", src.Location(), ErrTooLarge, l.maxBytes)
	}
	return source.NewDocument(src, data)
}

func (l *Loader) open(ctx context.Context, src source.Source) (io.ReadCloser, error) {
	switch src.Kind() {
	case source.SourceKindFile:
		return os.Open(src.Location())
	case source.SourceKindFS:
		if l.files == nil {
			return nil, fmt.Errorf("%w: no filesystem configured", ErrUnsupported)
		}
		return l.files.Open(src.Location())
	case source.SourceKindURL:
		if l.http == nil {
			return nil, fmt.Errorf("%w: http sources are disabled", ErrUnsupported)
		}
		return l.get(ctx, src.Location())
	}
	return nil, fmt.Errorf("%w: kind %q", ErrUnsupported, src.Kind())
}

func (l *Loader) get(ctx context.Context, raw string) (io.ReadCloser, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid url %q", raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Timeout reports the HTTP client timeout, zero when HTTP is disabled.
func (l *Loader) Timeout() time.Duration {
	if l.http == nil {
		return 0
	}
	return l.http.Timeout
}
