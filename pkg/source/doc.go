// Package source holds the document contracts shared by everything this
// module reads: content-type schemas, layout configuration records and
// OpenAPI documents. Loading lives in internal/loader; Decode is the common
// JSON-then-YAML decoder.
package source
