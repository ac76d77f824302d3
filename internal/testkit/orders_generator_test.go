package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersGeneratorDeterministic(t *testing.T) {
	cfg := DefaultOrdersConfig()
	cfg.Rows = 50

	a := NewOrdersGenerator(cfg).Generate()
	b := NewOrdersGenerator(cfg).Generate()
	require.Equal(t, a.RowCount(), b.RowCount())

	for i := 0; i < a.RowCount(); i++ {
		rowA, okA := a.Row(i)
		rowB, okB := b.Row(i)
		require.Equal(t, okA, okB, "row %d", i)
		if !okA {
			continue
		}
		require.Equal(t, rowA.LastCellPosition(), rowB.LastCellPosition())
		for pos := 0; pos <= rowA.LastCellPosition(); pos++ {
			cellA, _ := rowA.Cell(pos)
			cellB, _ := rowB.Cell(pos)
			assert.Equal(t, cellA, cellB)
		}
	}
}

func TestOrdersGeneratorShape(t *testing.T) {
	cfg := DefaultOrdersConfig()
	cfg.Rows = 300
	cfg.RaggedRate = 0.5
	grid := NewOrdersGenerator(cfg).Generate()

	header, ok := grid.Row(0)
	require.True(t, ok)
	assert.Equal(t, len(OrdersHeader)-1, header.LastCellPosition())

	orders, ragged := 0, 0
	for i := 1; i < grid.RowCount(); i++ {
		row, ok := grid.Row(i)
		if !ok {
			continue
		}
		orders++
		_, hasID := row.Cell(0)
		assert.True(t, hasID, "row %d lost its order id", i)
		if row.LastCellPosition() < len(OrdersHeader)-1 {
			ragged++
		}
	}
	assert.Equal(t, cfg.Rows, orders)
	assert.Greater(t, ragged, 0)
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	path := WriteWorkbook(t, t.TempDir(), "people.xlsx",
		SheetData{Name: "Notes", Rows: [][]any{{"x"}}},
		SheetData{Name: "People", Rows: PeopleRows, Active: true},
	)
	assert.FileExists(t, path)
}
