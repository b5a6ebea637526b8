package layout

// Row is an ordered run of entries sharing one grid line.
type Row []Entry

// Panel groups rows in the stored layout. Panel boundaries carry no meaning
// once flattened.
type Panel []Row

// Rows is the flattened, editable layout.
type Rows []Row

// Coord addresses an entry by row and column index.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Used sums the widths of the attribute entries in r.
func (r Row) Used() int {
	used := 0
	for _, e := range r {
		if !e.IsFiller() {
			used += e.Size
		}
	}
	return used
}

// Remaining reports the grid units not taken by attribute entries.
func (r Row) Remaining() int {
	return GridColumns - r.Used()
}

// Fields returns r without its filler entries.
func (r Row) Fields() Row {
	out := make(Row, 0, len(r))
	for _, e := range r {
		if !e.IsFiller() {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of rs.
func (rs Rows) Clone() Rows {
	if rs == nil {
		return nil
	}
	out := make(Rows, len(rs))
	for i, row := range rs {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// At returns the entry at c.
func (rs Rows) At(c Coord) (Entry, bool) {
	if c.Row < 0 || c.Row >= len(rs) {
		return Entry{}, false
	}
	row := rs[c.Row]
	if c.Col < 0 || c.Col >= len(row) {
		return Entry{}, false
	}
	return row[c.Col], true
}

// Find locates the attribute entry called name.
func (rs Rows) Find(name string) (Coord, bool) {
	for r, row := range rs {
		for c, e := range row {
			if !e.IsFiller() && e.Name == name {
				return Coord{Row: r, Col: c}, true
			}
		}
	}
	return Coord{}, false
}

// Names lists placed attribute names in layout order.
func (rs Rows) Names() []string {
	var out []string
	for _, row := range rs {
		for _, e := range row {
			if !e.IsFiller() {
				out = append(out, e.Name)
			}
		}
	}
	return out
}

// Clone returns a deep copy of p.
func (p Panel) Clone() Panel {
	return Panel(Rows(p).Clone())
}
