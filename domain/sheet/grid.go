package sheet

import "fmt"

// Source is read access to a materialised sheet. Implementations must be safe to
// read repeatedly; the pivot never mutates them.
type Source interface {
	// RowCount is the total number of physical rows, including the header
	RowCount() int
	// Row returns the row at index, or false for an absent row
	Row(index int) (RowView, bool)
}

// RowView is read access to one physical row of a sheet
type RowView interface {
	// LastCellPosition is the highest position holding a cell, or -1 for an empty row
	LastCellPosition() int
	Cell(pos int) (Cell, bool)
}

// Grid is a fully materialised sheet held in memory. Rows and cells are sparse:
// a row or a cell that was never set is absent.
type Grid struct {
	Name     string
	rows     map[int]*GridRow
	rowCount int
}

// GridRow is one row of a Grid
type GridRow struct {
	index int
	cells map[int]Cell
	last  int
}

// NewGrid creates an empty grid
func NewGrid(name string) *Grid {
	return &Grid{Name: name, rows: make(map[int]*GridRow)}
}

// RowCount returns the number of physical rows, including the header
func (g *Grid) RowCount() int {
	return g.rowCount
}

// SetRowCount extends the physical row count, e.g. for trailing empty rows
func (g *Grid) SetRowCount(n int) {
	if n > g.rowCount {
		g.rowCount = n
	}
}

// Row returns the row at index, or false if the row is absent
func (g *Grid) Row(index int) (RowView, bool) {
	row, ok := g.rows[index]
	if !ok {
		return nil, false
	}
	return row, true
}

// SetCell stores a typed cell at (row, col), replacing any existing cell there
func (g *Grid) SetCell(row, col int, t CellType, value any) {
	r, ok := g.rows[row]
	if !ok {
		r = &GridRow{index: row, cells: make(map[int]Cell), last: -1}
		g.rows[row] = r
	}
	r.cells[col] = Cell{Row: row, Col: col, Type: t, Value: value}
	if col > r.last {
		r.last = col
	}
	g.SetRowCount(row + 1)
}

// SetRow stores values starting at column 0. The cell type is inferred from the Go
// type of each value; nil leaves the position absent.
func (g *Grid) SetRow(row int, values ...any) {
	g.SetRowCount(row + 1)
	for col, v := range values {
		if v == nil {
			continue
		}
		t, normalized := inferCell(v)
		g.SetCell(row, col, t, normalized)
	}
}

func inferCell(v any) (CellType, any) {
	switch val := v.(type) {
	case bool:
		return CellTypeBoolean, val
	case float64:
		return CellTypeNumeric, val
	case float32:
		return CellTypeNumeric, float64(val)
	case int:
		return CellTypeNumeric, float64(val)
	case int64:
		return CellTypeNumeric, float64(val)
	case int32:
		return CellTypeNumeric, float64(val)
	case string:
		return CellTypeString, val
	case Cell:
		return val.Type, val.Value
	default:
		return CellTypeOther, fmt.Sprint(val)
	}
}

// Index returns the 0-based row index
func (r *GridRow) Index() int {
	return r.index
}

// LastCellPosition returns the highest populated column position, or -1
func (r *GridRow) LastCellPosition() int {
	return r.last
}

// Cell returns the cell at pos, or false if there is none
func (r *GridRow) Cell(pos int) (Cell, bool) {
	c, ok := r.cells[pos]
	return c, ok
}

// Cells returns the present cells of the row in column order
func (r *GridRow) Cells() []Cell {
	out := make([]Cell, 0, len(r.cells))
	for pos := 0; pos <= r.last; pos++ {
		if c, ok := r.cells[pos]; ok {
			out = append(out, c)
		}
	}
	return out
}
