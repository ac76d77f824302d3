package table

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"sheetpivot/domain/core"
	"sheetpivot/domain/sheet"
)

// Column is an ordered, append-only sequence of cells that share a column position.
// The i-th element corresponds to the i-th data row scanned by the pivot.
type Column struct {
	cells []sheet.Cell
}

// NewColumn creates a column holding the given cells in order
func NewColumn(cells ...sheet.Cell) *Column {
	c := &Column{cells: make([]sheet.Cell, 0, len(cells))}
	for _, cell := range cells {
		c.Add(cell)
	}
	return c
}

// Get returns the cell at index
func (c *Column) Get(index int) (sheet.Cell, error) {
	if index < 0 || index >= len(c.cells) {
		return sheet.Cell{}, fmt.Errorf("%w: %d not in [0, %d)", core.ErrIndexOutOfRange, index, len(c.cells))
	}
	return c.cells[index], nil
}

// Value decodes the cell at index. The second result is false when the cell is
// blank, holds no value, is of an unsupported type, or index is out of range.
func (c *Column) Value(index int) (any, bool) {
	if index < 0 || index >= len(c.cells) {
		return nil, false
	}
	return decode(c.cells[index])
}

// Add appends the cell unconditionally
func (c *Column) Add(cell sheet.Cell) {
	c.cells = append(c.cells, cell)
}

// AddIfAbsent appends the cell unless a cell with the same identity is already
// present. Decoded values are not compared. The check is a linear scan.
func (c *Column) AddIfAbsent(cell sheet.Cell) {
	id := cell.ID()
	for _, existing := range c.cells {
		if existing.ID() == id {
			return
		}
	}
	c.cells = append(c.cells, cell)
}

// Len returns the number of cells
func (c *Column) Len() int {
	return len(c.cells)
}

// AllOfType reports whether every cell has type t. An empty column reports true.
func (c *Column) AllOfType(t sheet.CellType) bool {
	for _, cell := range c.cells {
		if cell.Type != t {
			return false
		}
	}
	return true
}

// All iterates the cells in insertion order. The sequence can be ranged over
// repeatedly.
func (c *Column) All() iter.Seq2[int, sheet.Cell] {
	return func(yield func(int, sheet.Cell) bool) {
		for i, cell := range c.cells {
			if !yield(i, cell) {
				return
			}
		}
	}
}

// Cells returns a snapshot of the cells. Changes to the returned slice do not
// affect the column.
func (c *Column) Cells() []sheet.Cell {
	return slices.Clone(c.cells)
}

// Values returns the decoded value of every cell, nil where nothing decodes
func (c *Column) Values() []any {
	out := make([]any, len(c.cells))
	for i, cell := range c.cells {
		if v, ok := decode(cell); ok {
			out[i] = v
		}
	}
	return out
}

// Floats returns the values of the NUMERIC cells in order
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.cells))
	for _, cell := range c.cells {
		if cell.Type != sheet.CellTypeNumeric {
			continue
		}
		if f, ok := cell.Value.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// String renders the column as Column[Cell[TYPE - value], ...]
func (c *Column) String() string {
	var b strings.Builder
	b.WriteString("Column[")
	for i, cell := range c.cells {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := decode(cell)
		fmt.Fprintf(&b, "Cell[%s - %v]", cell.Type, v)
	}
	b.WriteString("]")
	return b.String()
}

// decode applies the value rule: BOOLEAN is a bool, NUMERIC a float64, STRING and
// FORMULA the display string. Everything else decodes to nothing.
func decode(cell sheet.Cell) (any, bool) {
	if cell.Value == nil {
		return nil, false
	}
	switch cell.Type {
	case sheet.CellTypeBoolean:
		if b, ok := cell.Value.(bool); ok {
			return b, true
		}
	case sheet.CellTypeNumeric:
		if f, ok := cell.Value.(float64); ok {
			return f, true
		}
	case sheet.CellTypeString, sheet.CellTypeFormula:
		if s, ok := cell.Value.(string); ok {
			return s, true
		}
	}
	return nil, false
}
