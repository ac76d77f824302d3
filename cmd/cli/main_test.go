package main

import (
	"bytes"
	"testing"

	"sheetpivot/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPivotCommandFormats(t *testing.T) {
	path := testkit.WriteFile(t, t.TempDir(), "people.csv", "Name,Age\nAnn,30\nBo,41\nann,19\n")

	out, err := run(t, "pivot", path)
	require.NoError(t, err)
	assert.Equal(t,
		"Age: Column[Cell[NUMERIC - 30], Cell[NUMERIC - 41], Cell[NUMERIC - 19]]\n"+
			"Name: Column[Cell[STRING - Ann], Cell[STRING - Bo], Cell[STRING - ann]]\n", out)

	out, err = run(t, "pivot", path, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| 41 | Bo |")

	out, err = run(t, "pivot", path, "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Age":[30,41,19],"Name":["Ann","Bo","ann"]}`, out)

	_, err = run(t, "pivot", path, "--format", "yaml")
	assert.Error(t, err)
}

func TestFilterCommand(t *testing.T) {
	path := testkit.WriteFile(t, t.TempDir(), "people.csv", "Name,Age\nAnn,30\nBo,41\nann,19\n")

	out, err := run(t, "filter", path, "--column", "Name", "--keyword", "ANN", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Age":[30,19],"Name":["Ann","ann"]}`, out)

	_, err = run(t, "filter", path, "--column", "Missing", "--keyword", "x")
	assert.ErrorContains(t, err, "column not found")

	_, err = run(t, "filter", path, "--keyword", "x")
	assert.Error(t, err)
}

func TestDescribeAndSheetsCommands(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteWorkbook(t, dir, "book.xlsx",
		testkit.SheetData{Name: "People", Rows: testkit.PeopleRows},
		testkit.SheetData{Name: "Empty", Rows: [][]any{{"Only"}}},
	)

	out, err := run(t, "sheets", path)
	require.NoError(t, err)
	assert.Equal(t, "People\nEmpty\n", out)

	out, err = run(t, "describe", path, "--sheet", "People")
	require.NoError(t, err)
	assert.Contains(t, out, "Age: 3 cells, 0 blank, 3 distinct, NUMERIC, mean 30, median 30, min 19, max 41")
	assert.Contains(t, out, "Name: 3 cells, 0 blank, 2 distinct, STRING")
}

func TestPivotCommandErrors(t *testing.T) {
	path := testkit.WriteFile(t, t.TempDir(), "people.csv", "Name,Age\nAnn,30\n")

	_, err := run(t, "pivot", path, "--gap", "zigzag")
	assert.Error(t, err)

	_, err = run(t, "pivot", path, "--header-row", "9")
	assert.ErrorContains(t, err, "invalid header row")

	_, err = run(t, "pivot")
	assert.Error(t, err)
}

func TestPivotAllSheets(t *testing.T) {
	path := testkit.WriteWorkbook(t, t.TempDir(), "book.xlsx",
		testkit.SheetData{Name: "People", Rows: testkit.PeopleRows, Active: true},
		testkit.SheetData{Name: "Cities", Rows: [][]any{{"City"}, {"Oslo"}}},
	)

	out, err := run(t, "pivot", path, "--all-sheets", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"People":{"Age":[30,41,19],"Name":["Ann","Bo","Ann"]},"Cities":{"City":["Oslo"]}}`, out)

	out, err = run(t, "pivot", path, "--all-sheets", "--workers", "1")
	require.NoError(t, err)
	assert.Equal(t, "## People\n\n"+
		"Age: Column[Cell[NUMERIC - 30], Cell[NUMERIC - 41], Cell[NUMERIC - 19]]\n"+
		"Name: Column[Cell[STRING - Ann], Cell[STRING - Bo], Cell[STRING - Ann]]\n"+
		"\n## Cities\n\n"+
		"City: Column[Cell[STRING - Oslo]]\n", out)

	_, err = run(t, "pivot", path, "--all-sheets", "--sheet", "People")
	assert.Error(t, err)
}
