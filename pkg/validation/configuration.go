// Package validation checks stored configuration documents against their
// content-type schema and reports every problem found as an Issue.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/settings"
)

// Severity grades an Issue. Only errors make a Result invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem with optional location metadata.
type Issue struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

// Result captures the outcome of a check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Options configures a check.
type Options struct {
	Overflow layout.OverflowPolicy
}

// Option mutates Options.
type Option func(*Options)

// WithOverflowPolicy selects how overflowing stored rows are treated.
func WithOverflowPolicy(policy layout.OverflowPolicy) Option {
	return func(o *Options) {
		o.Overflow = policy
	}
}

// CheckConfiguration validates cfg against sch: uid, layout structure,
// settings and metadata references. Unknown attributes in the layout or the
// metadata and hidden attributes that are still placed are warnings.
func CheckConfiguration(sch schema.Schema, cfg configuration.Configuration, opts ...Option) Result {
	options := Options{Overflow: layout.OverflowReject}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	var issues []Issue
	if cfg.UID != sch.UID {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "/uid",
			Message:  fmt.Sprintf("configuration uid %q does not match schema %q", cfg.UID, sch.UID),
		})
	}

	rows, err := layout.Normalize(cfg.Layout, layout.WithOverflowPolicy(options.Overflow))
	if err != nil {
		issues = append(issues, issuesFromError("/layout", err)...)
	} else {
		warnings, err := layout.Validate(rows, sch.Attributes, layout.WithOverflowPolicy(options.Overflow))
		issues = append(issues, issuesFromError("/layout", err)...)
		for _, name := range warnings {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "/layout",
				Field:    name,
				Message:  "unknown attribute",
			})
		}
		for _, name := range rows.Names() {
			if sch.Attributes.Has(name) && !cfg.Metadatas.Visible(name) {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     "/metadatas/" + name,
					Field:    name,
					Message:  "placed attribute is not visible",
				})
			}
		}
	}

	issues = append(issues, issuesFromError("/settings", settings.Validate(cfg.Settings, sch.Attributes))...)

	names := make([]string, 0, len(cfg.Metadatas))
	for name := range cfg.Metadatas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !sch.Attributes.Has(name) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "/metadatas/" + name,
				Field:    name,
				Message:  "metadata for unknown attribute",
			})
		}
	}

	result := Result{Valid: true, Issues: issues}
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			result.Valid = false
			break
		}
	}
	return result
}

// issuesFromError splits joined errors and turns each into an Issue under
// base.
func issuesFromError(base string, err error) []Issue {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []Issue
		for _, inner := range joined.Unwrap() {
			out = append(out, issuesFromError(base, inner)...)
		}
		return out
	}
	return []Issue{issueFromError(base, err)}
}

var quotedName = regexp.MustCompile(`"([^"]+)"`)

func issueFromError(base string, err error) Issue {
	issue := Issue{Severity: SeverityError, Path: base}

	var overflow *layout.RowOverflowError
	var size *layout.SizeError
	switch {
	case errors.As(err, &overflow):
		if overflow.Panel >= 0 {
			issue.Path = fmt.Sprintf("%s/%d/%d", base, overflow.Panel, overflow.Row)
		} else {
			issue.Path = fmt.Sprintf("%s/%d", base, overflow.Row)
		}
	case errors.As(err, &size):
		issue.Field = size.Name
	case errors.Is(err, settings.ErrIneligibleMainField):
		issue.Path = base + "/mainField"
	case errors.Is(err, settings.ErrInvalidSortOrder):
		issue.Path = base + "/defaultSortOrder"
	case errors.Is(err, settings.ErrInvalidPageSize):
		issue.Path = base + "/pageSize"
	}
	if issue.Field == "" {
		if m := quotedName.FindStringSubmatch(err.Error()); m != nil {
			issue.Field = m[1]
		}
	}

	msg := strings.TrimSpace(err.Error())
	for _, prefix := range []string{"layout: ", "settings: ", "configuration: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	issue.Message = msg
	return issue
}

// Sorted returns issues ordered by path, field and message.
func Sorted(issues []Issue) []Issue {
	out := append([]Issue(nil), issues...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Message < out[j].Message
	})
	return out
}
