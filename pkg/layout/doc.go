// Package layout holds the editable edit-view grid of a content type and the
// pure transformations applied to it.
//
// A stored layout is a list of panels, each a list of rows, each a list of
// entries whose sizes add up to at most GridColumns. Normalize pads every row
// with a single filler entry so it spans the full grid, then flattens panels
// into one ordered list of rows. Fillers are a distinct entry kind rather than
// a reserved name: they can never be edited, removed or counted as placed.
//
// Every mutation (Insert, Remove, Move, Resize, Relabel) returns a new Rows
// value and leaves its input untouched, so callers can keep the fetched
// layout around for a reset.
package layout
