package layout

import (
	"fmt"
	"strings"
)

// Reorderer relocates the entry at from to to. Implementations receive a
// private copy of the layout and may modify it in place; fillers are
// recomputed by the caller afterwards.
type Reorderer interface {
	Reorder(rows Rows, from, to Coord) (Rows, error)
}

// ReordererFunc adapts a function into a Reorderer.
type ReordererFunc func(rows Rows, from, to Coord) (Rows, error)

// Reorder delegates to fn.
func (fn ReordererFunc) Reorder(rows Rows, from, to Coord) (Rows, error) {
	return fn(rows, from, to)
}

// SliceReorderer removes the entry at from and inserts it at to. A to.Row
// equal to len(rows) opens a new trailing row; to.Col is clamped to the
// target row's attribute entries.
type SliceReorderer struct{}

// Reorder implements Reorderer.
func (SliceReorderer) Reorder(rows Rows, from, to Coord) (Rows, error) {
	work := make(Rows, len(rows))
	for i, row := range rows {
		work[i] = row.Fields()
	}
	if from.Row < 0 || from.Row >= len(work) || from.Col < 0 || from.Col >= len(work[from.Row]) {
		return nil, fmt.Errorf("%w: from %v", ErrInvalidCoord, from)
	}

	if to.Row < 0 || to.Row > len(work) {
		return nil, fmt.Errorf("%w: to %v", ErrInvalidCoord, to)
	}

	entry := work[from.Row][from.Col]
	work[from.Row] = append(work[from.Row][:from.Col:from.Col], work[from.Row][from.Col+1:]...)

	if to.Row == len(work) {
		work = append(work, Row{entry})
		return work, nil
	}
	target := work[to.Row]
	col := clamp(to.Col, 0, len(target))
	work[to.Row] = insertAt(target, col, entry)
	return work, nil
}

// Remove deletes the attribute entry called name. The row's filler is left
// as it was; call Repad to close the gap.
func Remove(rows Rows, name string) (Rows, error) {
	at, ok := rows.Find(name)
	if !ok {
		return nil, fmt.Errorf("layout: remove %q: %w", name, ErrFieldNotFound)
	}
	return removeAt(rows, at), nil
}

// RemoveAt deletes the entry at c. Fillers cannot be removed.
func RemoveAt(rows Rows, c Coord) (Rows, error) {
	entry, ok := rows.At(c)
	if !ok {
		return nil, fmt.Errorf("layout: remove %v: %w", c, ErrInvalidCoord)
	}
	if entry.IsFiller() {
		return nil, fmt.Errorf("layout: remove %v: %w", c, ErrFillerNotEditable)
	}
	return removeAt(rows, c), nil
}

func removeAt(rows Rows, c Coord) Rows {
	out := rows.Clone()
	row := out[c.Row]
	out[c.Row] = append(row[:c.Col:c.Col], row[c.Col+1:]...)
	return out
}

// Move relocates the attribute entry at from to the coordinate to using r
// (SliceReorderer when nil) and recomputes fillers. Moving into a row
// without room fails with a *RowOverflowError. The reordered layout must
// hold exactly the attribute entries it started with.
func Move(rows Rows, from, to Coord, r Reorderer, opts ...Option) (Rows, error) {
	entry, ok := rows.At(from)
	if !ok {
		return nil, fmt.Errorf("layout: move %v: %w", from, ErrInvalidCoord)
	}
	if entry.IsFiller() {
		return nil, fmt.Errorf("layout: move %v: %w", from, ErrFillerNotEditable)
	}
	if to.Row < 0 || to.Row > len(rows) || to.Col < 0 {
		return nil, fmt.Errorf("layout: move to %v: %w", to, ErrInvalidCoord)
	}
	if r == nil {
		r = SliceReorderer{}
	}

	moved, err := r.Reorder(rows.Clone(), from, to)
	if err != nil {
		return nil, fmt.Errorf("layout: move %q: %w", entry.Name, err)
	}
	if !sameFields(rows, moved) {
		return nil, fmt.Errorf("layout: move %q: %w", entry.Name, ErrFieldSetChanged)
	}
	if err := checkGrowth(rows, moved, to.Row); err != nil {
		return nil, fmt.Errorf("layout: move %q: %w", entry.Name, err)
	}
	out, err := Repad(moved, opts...)
	if err != nil {
		return nil, fmt.Errorf("layout: move %q: %w", entry.Name, err)
	}
	return out, nil
}

// Position selects where Insert places a new entry.
type Position struct {
	mode positionMode
	at   Coord
}

type positionMode uint8

const (
	positionFirstFit positionMode = iota
	positionAppendRow
	positionAt
)

var (
	// FirstFit places the entry in the first row with enough free columns,
	// or in a new trailing row. It is the zero Position.
	FirstFit = Position{mode: positionFirstFit}
	// AppendRow always opens a new trailing row.
	AppendRow = Position{mode: positionAppendRow}
)

// At places the entry at c. c.Row may equal the row count to open a new row.
func At(c Coord) Position {
	return Position{mode: positionAt, at: c}
}

func (p Position) String() string {
	switch p.mode {
	case positionAppendRow:
		return "append-row"
	case positionAt:
		return fmt.Sprintf("at(%d,%d)", p.at.Row, p.at.Col)
	default:
		return "first-fit"
	}
}

// ParsePosition reads the textual forms produced by Position.String plus the
// short aliases "first", "append" and "row,col".
func ParsePosition(raw string) (Position, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "first", "first-fit":
		return FirstFit, nil
	case "append", "append-row":
		return AppendRow, nil
	}
	value = strings.TrimSuffix(strings.TrimPrefix(value, "at("), ")")
	var c Coord
	if _, err := fmt.Sscanf(value, "%d,%d", &c.Row, &c.Col); err != nil {
		return Position{}, fmt.Errorf("layout: invalid position %q", raw)
	}
	return At(c), nil
}

// Insert adds entry to rows at pos and recomputes fillers.
func Insert(rows Rows, entry Entry, pos Position, opts ...Option) (Rows, error) {
	if entry.IsFiller() {
		return nil, fmt.Errorf("layout: insert: %w", ErrFillerNotEditable)
	}
	if entry.Size < 1 || entry.Size > GridColumns {
		return nil, &SizeError{Name: entry.Name, Size: entry.Size}
	}
	if _, ok := rows.Find(entry.Name); ok {
		return nil, fmt.Errorf("layout: insert %q: %w", entry.Name, ErrDuplicateField)
	}

	out := rows.Clone()
	switch pos.mode {
	case positionAppendRow:
		out = append(out, Row{entry})
	case positionAt:
		c := pos.at
		if c.Row < 0 || c.Row > len(out) || c.Col < 0 {
			return nil, fmt.Errorf("layout: insert %q at %v: %w", entry.Name, c, ErrInvalidCoord)
		}
		if c.Row == len(out) {
			out = append(out, Row{entry})
			break
		}
		fields := out[c.Row].Fields()
		out[c.Row] = insertAt(fields, clamp(c.Col, 0, len(fields)), entry)
		if err := checkGrowth(rows, out, c.Row); err != nil {
			return nil, fmt.Errorf("layout: insert %q: %w", entry.Name, err)
		}
	default:
		placed := false
		for i, row := range out {
			if row.Remaining() >= entry.Size {
				out[i] = append(row.Fields(), entry)
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, Row{entry})
		}
	}

	padded, err := Repad(out, opts...)
	if err != nil {
		return nil, fmt.Errorf("layout: insert %q: %w", entry.Name, err)
	}
	return padded, nil
}

// Resize changes the width of the entry called name, keeping it in its row.
func Resize(rows Rows, name string, size int, opts ...Option) (Rows, error) {
	if size < 1 || size > GridColumns {
		return nil, &SizeError{Name: name, Size: size}
	}
	at, ok := rows.Find(name)
	if !ok {
		return nil, fmt.Errorf("layout: resize %q: %w", name, ErrFieldNotFound)
	}
	out := rows.Clone()
	out[at.Row][at.Col].Size = size
	if err := checkGrowth(rows, out, at.Row); err != nil {
		return nil, fmt.Errorf("layout: resize %q: %w", name, err)
	}

	padded, err := Repad(out, opts...)
	if err != nil {
		return nil, fmt.Errorf("layout: resize %q: %w", name, err)
	}
	return padded, nil
}

// Relabel changes the display label of the entry called name.
func Relabel(rows Rows, name, label string) (Rows, error) {
	at, ok := rows.Find(name)
	if !ok {
		return nil, fmt.Errorf("layout: relabel %q: %w", name, ErrFieldNotFound)
	}
	out := rows.Clone()
	out[at.Row][at.Col].Label = label
	return out, nil
}

// checkGrowth rejects a mutation that leaves row i of after wider than the
// grid and wider than it was in before. Rows already overflowing under
// OverflowClamp may be edited as long as they do not grow.
func checkGrowth(before, after Rows, i int) error {
	if i < 0 || i >= len(after) {
		return nil
	}
	used := after[i].Used()
	prev := 0
	if i < len(before) {
		prev = before[i].Used()
	}
	if used > GridColumns && used > prev {
		return &RowOverflowError{Panel: -1, Row: i, Used: used}
	}
	return nil
}

func sameFields(before, after Rows) bool {
	want := before.Names()
	got := after.Names()
	if len(want) != len(got) {
		return false
	}
	counts := make(map[string]int, len(want))
	for _, name := range want {
		counts[name]++
	}
	for _, name := range got {
		if counts[name] == 0 {
			return false
		}
		counts[name]--
	}
	return true
}

func insertAt(row Row, col int, entry Entry) Row {
	out := make(Row, 0, len(row)+1)
	out = append(out, row[:col]...)
	out = append(out, entry)
	return append(out, row[col:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
