package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a document comes from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type ref struct {
	kind     SourceKind
	location string
}

func (r ref) Kind() SourceKind { return r.kind }
func (r ref) Location() string { return r.location }
func (r ref) String() string   { return string(r.kind) + ":" + r.location }

// FromFile returns a Source for a path on disk.
func FromFile(path string) Source {
	return ref{kind: SourceKindFile, location: filepath.Clean(path)}
}

// FromFS returns a Source naming an entry of the loader's fs.FS.
func FromFS(name string) Source {
	return ref{kind: SourceKindFS, location: strings.TrimPrefix(name, "/")}
}

// FromURL returns a Source for an http(s) URL. The URL is checked when the
// document is loaded.
func FromURL(raw string) Source {
	return ref{kind: SourceKindURL, location: strings.TrimSpace(raw)}
}

// Parse picks a Source for a CLI style argument: http(s) URLs become URL
// sources, "fs:" prefixed names FS sources, everything else a file path.
// Empty input yields nil.
func Parse(raw string) Source {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return nil
	case strings.HasPrefix(raw, "fs:"):
		return FromFS(strings.TrimPrefix(raw, "fs:"))
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return FromURL(raw)
	}
	return FromFile(raw)
}
