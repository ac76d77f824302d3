package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSetRowInfersTypes(t *testing.T) {
	g := NewGrid("types")
	g.SetRow(0, "name", 3, 2.5, true, nil, float32(1.5))

	row, ok := g.Row(0)
	require.True(t, ok)
	assert.Equal(t, 5, row.LastCellPosition())

	want := []struct {
		pos   int
		typ   CellType
		value any
	}{
		{0, CellTypeString, "name"},
		{1, CellTypeNumeric, 3.0},
		{2, CellTypeNumeric, 2.5},
		{3, CellTypeBoolean, true},
		{5, CellTypeNumeric, 1.5},
	}
	for _, w := range want {
		cell, ok := row.Cell(w.pos)
		require.True(t, ok, "pos %d", w.pos)
		assert.Equal(t, w.typ, cell.Type, "pos %d", w.pos)
		assert.Equal(t, w.value, cell.Value, "pos %d", w.pos)
		assert.Equal(t, CellID{Row: 0, Col: w.pos}, cell.ID())
	}

	_, ok = row.Cell(4)
	assert.False(t, ok)
}

func TestGridSparseRows(t *testing.T) {
	g := NewGrid("sparse")
	g.SetRow(0, "h")
	g.SetRow(3, "x")

	assert.Equal(t, 4, g.RowCount())
	_, ok := g.Row(1)
	assert.False(t, ok)

	g.SetRowCount(2)
	assert.Equal(t, 4, g.RowCount())
	g.SetRowCount(6)
	assert.Equal(t, 6, g.RowCount())

	empty := NewGrid("empty")
	empty.SetRow(0)
	assert.Equal(t, 1, empty.RowCount())
	_, ok = empty.Row(0)
	assert.False(t, ok)
}

func TestGridRowCells(t *testing.T) {
	g := NewGrid("cells")
	g.SetCell(1, 4, CellTypeString, "e")
	g.SetCell(1, 0, CellTypeString, "a")

	row, ok := g.Row(1)
	require.True(t, ok)
	cells := row.(*GridRow).Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "a", cells[0].Value)
	assert.Equal(t, "e", cells[1].Value)
}

func TestCellTypeNames(t *testing.T) {
	for _, ct := range []CellType{CellTypeBoolean, CellTypeNumeric, CellTypeString,
		CellTypeFormula, CellTypeBlank, CellTypeError, CellTypeOther} {
		assert.Equal(t, ct, ParseCellType(ct.String()))
	}
	assert.Equal(t, "STRING", CellTypeString.String())
	assert.Equal(t, CellTypeNumeric, ParseCellType(" numeric "))
	assert.Equal(t, CellTypeOther, ParseCellType("DATE"))
	assert.Equal(t, "OTHER", CellType(42).String())
}

func TestCellStringValue(t *testing.T) {
	s, ok := Cell{Type: CellTypeString, Value: "x"}.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = Cell{Type: CellTypeNumeric, Value: 1.0}.StringValue()
	assert.False(t, ok)

	_, ok = Cell{Type: CellTypeFormula, Value: "Total"}.StringValue()
	assert.False(t, ok)

	_, ok = Blank(0, 0).StringValue()
	assert.False(t, ok)
}
