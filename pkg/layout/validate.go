package layout

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formlayout/pkg/schema"
)

// Validate checks a flattened layout before it is persisted. Structural
// problems (bad sizes, rows that do not span the grid, misplaced fillers,
// duplicate names) are joined into err. Entries naming attributes missing
// from attrs are not fatal; their names are returned as warnings. Under
// OverflowClamp a row wider than the grid is accepted when it carries no
// filler.
func Validate(rows Rows, attrs schema.Attributes, opts ...Option) (warnings []string, err error) {
	cfg := newOptions(opts)
	var errs []error
	seen := make(map[string]struct{})

	for r, row := range rows {
		total := 0
		fillers := 0
		for c, e := range row {
			if e.Size < 1 || e.Size > GridColumns {
				errs = append(errs, &SizeError{Name: e.Name, Size: e.Size})
				continue
			}
			total += e.Size
			if e.IsFiller() {
				fillers++
				if c != len(row)-1 {
					errs = append(errs, fmt.Errorf("layout: row %d column %d: %w", r, c, ErrMisplacedFiller))
				}
				continue
			}
			if e.Name == "" {
				errs = append(errs, fmt.Errorf("layout: row %d column %d has no name: %w", r, c, ErrFieldNotFound))
				continue
			}
			if _, dup := seen[e.Name]; dup {
				errs = append(errs, fmt.Errorf("layout: %q: %w", e.Name, ErrDuplicateField))
			}
			seen[e.Name] = struct{}{}
			if attrs.Len() > 0 && !attrs.Has(e.Name) {
				warnings = append(warnings, e.Name)
			}
		}
		switch {
		case total > GridColumns && (cfg.overflow == OverflowReject || fillers > 0):
			errs = append(errs, &RowOverflowError{Panel: -1, Row: r, Used: total})
		case total < GridColumns:
			errs = append(errs, fmt.Errorf("layout: row %d spans %d of %d columns: %w", r, total, GridColumns, ErrIncompleteRow))
		}
		if fillers > 1 {
			errs = append(errs, fmt.Errorf("layout: row %d has %d fillers: %w", r, fillers, ErrMisplacedFiller))
		}
	}

	return warnings, errors.Join(errs...)
}
