package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a document.
type Format string

const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// ErrEmptyDocument is returned when a payload holds only whitespace.
var ErrEmptyDocument = errors.New("source: document is empty")

// DetectFormat guesses the format from the location's extension, then from
// the first significant byte of raw.
func DetectFormat(location string, raw []byte) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode unmarshals raw as JSON and falls back to YAML when that fails. It
// reports which format succeeded.
func Decode[T any](raw []byte) (T, Format, error) {
	var zero T
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, FormatUnknown, ErrEmptyDocument
	}

	var out T
	jerr := json.Unmarshal(raw, &out)
	if jerr == nil {
		return out, FormatJSON, nil
	}
	out = zero
	if yerr := yaml.Unmarshal(raw, &out); yerr != nil {
		return zero, FormatUnknown, errors.Join(jerr, yerr)
	}
	return out, FormatYAML, nil
}
