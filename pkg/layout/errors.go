package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrRowOverflow marks a row whose entries exceed GridColumns.
	ErrRowOverflow = errors.New("layout: row exceeds grid width")
	// ErrInvalidSize marks an entry sized outside 1..GridColumns.
	ErrInvalidSize = errors.New("layout: entry size out of range")
	// ErrFieldNotFound is returned when a named entry is not placed.
	ErrFieldNotFound = errors.New("layout: field not found")
	// ErrDuplicateField is returned when an attribute would be placed twice.
	ErrDuplicateField = errors.New("layout: field already placed")
	// ErrFillerNotEditable is returned for any mutation aimed at a filler.
	ErrFillerNotEditable = errors.New("layout: filler entries are not editable")
	// ErrInvalidCoord is returned for coordinates outside the layout.
	ErrInvalidCoord = errors.New("layout: coordinate out of range")
	// ErrMisplacedFiller marks a filler that is not the single last entry.
	ErrMisplacedFiller = errors.New("layout: filler must be the single last entry of its row")
	// ErrFieldSetChanged is returned when a Reorderer adds, drops or
	// duplicates attribute entries.
	ErrFieldSetChanged = errors.New("layout: reorder changed the placed fields")
	// ErrIncompleteRow marks a row that does not span the full grid.
	ErrIncompleteRow = errors.New("layout: row does not span the grid")
)

// RowOverflowError reports where an overflowing row sits. Panel is -1 when
// the row comes from an already flattened layout.
type RowOverflowError struct {
	Panel int
	Row   int
	Used  int
}

func (e *RowOverflowError) Error() string {
	if e.Panel < 0 {
		return fmt.Sprintf("layout: row %d uses %d of %d columns", e.Row, e.Used, GridColumns)
	}
	return fmt.Sprintf("layout: panel %d row %d uses %d of %d columns", e.Panel, e.Row, e.Used, GridColumns)
}

func (e *RowOverflowError) Unwrap() error {
	return ErrRowOverflow
}

// SizeError reports an entry whose size is out of range.
type SizeError struct {
	Name string
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("layout: entry %q has size %d, want 1..%d", e.Name, e.Size, GridColumns)
}

func (e *SizeError) Unwrap() error {
	return ErrInvalidSize
}
