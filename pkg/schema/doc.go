// Package schema models the content-type schema an edit-view layout is built
// from: typed attributes kept in document order, and the per-attribute
// presentation metadata (visibility, labels) supplied alongside it.
//
// Attribute order matters. The availability resolver and the main-field
// filter both report attributes in the order the schema document declares
// them, so Attributes preserves insertion order for JSON and YAML payloads.
package schema
