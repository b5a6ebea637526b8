package layout

import "errors"

// OverflowPolicy decides what Normalize does with a row wider than the grid.
type OverflowPolicy int

const (
	// OverflowReject fails with a *RowOverflowError.
	OverflowReject OverflowPolicy = iota
	// OverflowClamp keeps the row unchanged and adds no filler.
	OverflowClamp
)

// Option configures Normalize, Repad, Validate and the mutations that
// recompute fillers.
type Option func(*options)

type options struct {
	overflow OverflowPolicy
}

// WithOverflowPolicy selects how overflowing rows are handled.
func WithOverflowPolicy(policy OverflowPolicy) Option {
	return func(o *options) {
		o.overflow = policy
	}
}

// Normalize pads every row of panels to GridColumns with one filler entry and
// flattens the panels by one level, keeping panel and row order. Fillers
// already present in the input are recomputed, so Normalize is idempotent on
// its own output. The input is never modified.
func Normalize(panels []Panel, opts ...Option) (Rows, error) {
	cfg := newOptions(opts)

	count := 0
	for _, panel := range panels {
		count += len(panel)
	}

	out := make(Rows, 0, count)
	for p, panel := range panels {
		for r, row := range panel {
			padded, err := pad(row, cfg.overflow)
			if err != nil {
				var overflow *RowOverflowError
				if errors.As(err, &overflow) {
					overflow.Panel, overflow.Row = p, r
				}
				return nil, err
			}
			out = append(out, padded)
		}
	}
	return out, nil
}

// Pad returns row followed by a single filler covering the unused columns.
// Rows wider than the grid are rejected.
func Pad(row Row) (Row, error) {
	padded, err := pad(row, OverflowReject)
	if err != nil {
		var overflow *RowOverflowError
		if errors.As(err, &overflow) {
			overflow.Panel = -1
		}
		return nil, err
	}
	return padded, nil
}

func newOptions(opts []Option) options {
	cfg := options{overflow: OverflowReject}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func pad(row Row, policy OverflowPolicy) (Row, error) {
	fields := make(Row, 0, len(row)+1)
	used := 0
	for _, e := range row {
		if e.IsFiller() {
			continue
		}
		if e.Size < 1 || e.Size > GridColumns {
			return nil, &SizeError{Name: e.Name, Size: e.Size}
		}
		used += e.Size
		fields = append(fields, e)
	}

	switch {
	case used < GridColumns:
		fields = append(fields, Filler(GridColumns-used))
	case used > GridColumns && policy == OverflowReject:
		return nil, &RowOverflowError{Used: used}
	}
	return fields, nil
}

// Flatten concatenates the rows of panels without padding them.
func Flatten(panels []Panel) Rows {
	var out Rows
	for _, panel := range panels {
		for _, row := range panel {
			out = append(out, append(Row(nil), row...))
		}
	}
	return out
}

// Repad recomputes fillers after a mutation. Rows left without attribute
// entries are dropped. Rows wider than the grid are rejected unless the
// OverflowClamp policy is selected, in which case they are kept as they are.
func Repad(rows Rows, opts ...Option) (Rows, error) {
	cfg := newOptions(opts)
	out := make(Rows, 0, len(rows))
	for i, row := range rows {
		fields := row.Fields()
		if len(fields) == 0 {
			continue
		}
		padded, err := pad(fields, cfg.overflow)
		if err != nil {
			var overflow *RowOverflowError
			if errors.As(err, &overflow) {
				overflow.Panel, overflow.Row = -1, i
			}
			return nil, err
		}
		out = append(out, padded)
	}
	return out, nil
}

// Panels regroups a flattened layout into the stored shape: one panel whose
// rows carry attribute entries only.
func Panels(rows Rows) []Panel {
	panel := make(Panel, 0, len(rows))
	for _, row := range rows {
		fields := row.Fields()
		if len(fields) == 0 {
			continue
		}
		panel = append(panel, fields)
	}
	if len(panel) == 0 {
		return []Panel{}
	}
	return []Panel{panel}
}
