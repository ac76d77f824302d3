package table

import (
	"testing"

	"sheetpivot/domain/core"
	"sheetpivot/domain/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(row, col int, s string) sheet.Cell {
	return sheet.Cell{Row: row, Col: col, Type: sheet.CellTypeString, Value: s}
}

func num(row, col int, f float64) sheet.Cell {
	return sheet.Cell{Row: row, Col: col, Type: sheet.CellTypeNumeric, Value: f}
}

func TestColumnGet(t *testing.T) {
	col := NewColumn(str(1, 0, "Ann"), str(2, 0, "Bo"))

	cell, err := col.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Bo", cell.Value)

	_, err = col.Get(2)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
	_, err = col.Get(-1)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestColumnValueDecoding(t *testing.T) {
	col := NewColumn(
		sheet.Cell{Row: 0, Type: sheet.CellTypeBoolean, Value: true},
		num(1, 0, 41),
		str(2, 0, "text"),
		sheet.Cell{Row: 3, Type: sheet.CellTypeFormula, Value: "=A1 result"},
		sheet.Blank(4, 0),
		sheet.Cell{Row: 5, Type: sheet.CellTypeError, Value: "#DIV/0!"},
		sheet.Cell{Row: 6, Type: sheet.CellTypeNumeric, Value: "not a float"},
		sheet.Cell{Row: 7, Type: sheet.CellTypeString},
	)

	tests := []struct {
		index int
		want  any
		ok    bool
	}{
		{0, true, true},
		{1, 41.0, true},
		{2, "text", true},
		{3, "=A1 result", true},
		{4, nil, false},
		{5, nil, false},
		{6, nil, false},
		{7, nil, false},
		{8, nil, false},
	}
	for _, tt := range tests {
		got, ok := col.Value(tt.index)
		assert.Equal(t, tt.ok, ok, "index %d", tt.index)
		assert.Equal(t, tt.want, got, "index %d", tt.index)
	}
}

func TestColumnAddIfAbsentUsesIdentity(t *testing.T) {
	col := &Column{}
	first := str(1, 0, "Ann")

	col.AddIfAbsent(first)
	col.AddIfAbsent(first)
	assert.Equal(t, 1, col.Len())

	// same value, different cell
	col.AddIfAbsent(str(3, 0, "Ann"))
	assert.Equal(t, 2, col.Len())

	// same identity, different value is still a duplicate
	col.AddIfAbsent(str(1, 0, "changed"))
	assert.Equal(t, 2, col.Len())

	col.Add(first)
	assert.Equal(t, 3, col.Len())
}

func TestColumnAllOfType(t *testing.T) {
	assert.True(t, (&Column{}).AllOfType(sheet.CellTypeNumeric))

	col := NewColumn(num(1, 0, 1), num(2, 0, 2))
	assert.True(t, col.AllOfType(sheet.CellTypeNumeric))

	col.Add(str(3, 0, "x"))
	assert.False(t, col.AllOfType(sheet.CellTypeNumeric))
}

func TestColumnIterationAndSnapshot(t *testing.T) {
	col := NewColumn(str(1, 0, "a"), str(2, 0, "b"), str(3, 0, "c"))

	var first, second []string
	for _, cell := range col.All() {
		first = append(first, cell.Value.(string))
	}
	for i, cell := range col.All() {
		if i == 2 {
			break
		}
		second = append(second, cell.Value.(string))
	}
	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, []string{"a", "b"}, second)

	snapshot := col.Cells()
	snapshot[0] = str(9, 9, "mutated")
	got, err := col.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Value)
}

func TestColumnValuesAndFloats(t *testing.T) {
	col := NewColumn(num(1, 0, 2.5), sheet.Blank(2, 0), str(3, 0, "x"), num(4, 0, 4))

	assert.Equal(t, []any{2.5, nil, "x", 4.0}, col.Values())
	assert.Equal(t, []float64{2.5, 4}, col.Floats())
}

func TestColumnString(t *testing.T) {
	col := NewColumn(str(1, 0, "Ann"), num(1, 1, 30), sheet.Blank(1, 2))
	assert.Equal(t, "Column[Cell[STRING - Ann], Cell[NUMERIC - 30], Cell[BLANK - <nil>]]", col.String())
	assert.Equal(t, "Column[]", (&Column{}).String())
}
