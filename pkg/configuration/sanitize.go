package configuration

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formlayout/pkg/layout"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel strips markup from a user supplied label.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// StrictPolicy escapes what it keeps; labels are stored as plain text.
	return strings.TrimSpace(html.UnescapeString(labelSanitizer().Sanitize(trimmed)))
}

func sanitizeRows(rows layout.Rows) layout.Rows {
	out := rows.Clone()
	for _, row := range out {
		for i := range row {
			if row[i].IsFiller() {
				continue
			}
			row[i].Label = SanitizeLabel(row[i].Label)
		}
	}
	return out
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
