package layout

import "github.com/goliatone/go-formlayout/pkg/schema"

// Placed returns the set of attribute names present in rows. Fillers are
// ignored.
func Placed(rows Rows) map[string]struct{} {
	out := make(map[string]struct{})
	for _, row := range rows {
		for _, e := range row {
			if e.IsFiller() {
				continue
			}
			out[e.Name] = struct{}{}
		}
	}
	return out
}

// Available lists the attributes that can still be inserted: not placed in
// rows and flagged visible in metas. A missing metadata entry counts as
// hidden. Order follows attrs.
func Available(attrs schema.Attributes, rows Rows, metas schema.Metadatas) []string {
	placed := Placed(rows)
	out := make([]string, 0, attrs.Len())
	for _, name := range attrs.Names() {
		if _, ok := placed[name]; ok {
			continue
		}
		if !metas.Visible(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
