package profiling

import (
	"testing"

	"sheetpivot/domain/sheet"
	"sheetpivot/domain/table"
	"sheetpivot/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribePeople(t *testing.T) {
	tbl, err := table.Build(testkit.PeopleGrid(), 0)
	require.NoError(t, err)

	profiles := Describe(tbl)
	require.Len(t, profiles, 2)

	age := profiles[0]
	assert.Equal(t, "Age", age.Header)
	assert.Equal(t, 3, age.Count)
	assert.Equal(t, "NUMERIC", age.DominantType)
	assert.True(t, age.Homogeneous)
	require.NotNil(t, age.Numeric)
	assert.InDelta(t, 30.0, age.Numeric.Mean, 1e-9)
	assert.Equal(t, 19.0, age.Numeric.Min)
	assert.Equal(t, 41.0, age.Numeric.Max)
	assert.Equal(t, 30.0, age.Numeric.Median)
	assert.Nil(t, age.Text)

	name := profiles[1]
	assert.Equal(t, "Name", name.Header)
	assert.Equal(t, "STRING", name.DominantType)
	assert.Equal(t, 2, name.Distinct)
	assert.Nil(t, name.Numeric)
	require.NotNil(t, name.Text)
	assert.Equal(t, 3, name.Text.ValidCount)
	assert.Zero(t, name.Text.NumericCount)
}

func TestDescribeMixedColumn(t *testing.T) {
	grid := testkit.GridFromRows("mixed", [][]any{
		{"Qty", "Note"},
		{1.0, "12"},
		{"n/a", "true"},
		{3.0},
	})
	tbl, err := table.Build(grid, 0)
	require.NoError(t, err)

	profiles := Describe(tbl)
	require.Len(t, profiles, 2)

	note := profiles[0]
	assert.Equal(t, "Note", note.Header)
	assert.Equal(t, 1, note.Blank)
	assert.False(t, note.Homogeneous)
	assert.Equal(t, map[string]int{"STRING": 2, "BLANK": 1}, note.TypeCounts)
	require.NotNil(t, note.Text)
	assert.Equal(t, 1, note.Text.NumericCount)
	assert.Equal(t, 1, note.Text.BooleanCount)

	qty := profiles[1]
	assert.Equal(t, "NUMERIC", qty.DominantType)
	assert.False(t, qty.Homogeneous)
	require.NotNil(t, qty.Numeric)
	assert.Equal(t, 2, qty.Numeric.Count)
	assert.InDelta(t, 2.0, qty.Numeric.Mean, 1e-9)
}

func TestDescribeEmptyColumn(t *testing.T) {
	tbl := table.Table{"Empty": table.NewColumn()}
	profiles := Describe(tbl)
	require.Len(t, profiles, 1)
	assert.Zero(t, profiles[0].Count)
	assert.Empty(t, profiles[0].DominantType)
	assert.Nil(t, profiles[0].Numeric)
}

func TestSummarize(t *testing.T) {
	_, err := Summarize(nil)
	assert.Error(t, err)

	single, err := Summarize([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, single.Q25)
	assert.Equal(t, 7.0, single.Q75)
	assert.Zero(t, single.Skewness)
	assert.Zero(t, single.Outliers)

	summary, err := Summarize([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.Min)
	assert.Equal(t, 100.0, summary.Max)
	assert.Equal(t, 5.0, summary.Median)
	assert.Equal(t, 1, summary.Outliers)
	assert.Greater(t, summary.Skewness, 0.0)
}

func TestDescribeBlankPlaceholders(t *testing.T) {
	col := table.NewColumn(
		sheet.Blank(1, 0),
		sheet.Cell{Row: 2, Col: 0, Type: sheet.CellTypeBoolean, Value: true},
	)
	profiles := Describe(table.Table{"Flag": col})
	require.Len(t, profiles, 1)
	assert.Equal(t, 1, profiles[0].Blank)
	// ties resolve to the lower type
	assert.Equal(t, "BOOLEAN", profiles[0].DominantType)
}
