package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"sheetpivot/domain/sheet"

	"github.com/xuri/excelize/v2"
)

// PeopleRows is the small Name/Age sheet used across tests
var PeopleRows = [][]any{
	{"Name", "Age"},
	{"Ann", 30.0},
	{"Bo", 41.0},
	{"Ann", 19.0},
}

// GridFromRows builds a grid with rows[i] at row index i
func GridFromRows(name string, rows [][]any) *sheet.Grid {
	grid := sheet.NewGrid(name)
	for i, row := range rows {
		grid.SetRow(i, row...)
	}
	return grid
}

// PeopleGrid returns PeopleRows as a grid
func PeopleGrid() *sheet.Grid {
	return GridFromRows("people", PeopleRows)
}

// SheetData describes one sheet of a workbook fixture
type SheetData struct {
	Name   string
	Rows   [][]any
	Active bool
}

// WriteWorkbook saves an xlsx file in dir and returns its path. Nil values leave
// the cell empty.
func WriteWorkbook(t testing.TB, dir, fileName string, sheets ...SheetData) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	keepDefault := false
	for _, s := range sheets {
		if s.Name == defaultSheet {
			keepDefault = true
		}
	}

	for _, s := range sheets {
		idx, err := f.NewSheet(s.Name)
		if err != nil {
			t.Fatalf("create sheet %s: %v", s.Name, err)
		}
		for r, row := range s.Rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue(s.Name, axis, value); err != nil {
					t.Fatalf("set %s!%s: %v", s.Name, axis, err)
				}
			}
		}
		if s.Active {
			f.SetActiveSheet(idx)
		}
	}
	if !keepDefault && len(sheets) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			t.Fatalf("delete default sheet: %v", err)
		}
		f.SetActiveSheet(0)
		for i, s := range sheets {
			if s.Active {
				f.SetActiveSheet(i)
			}
		}
	}

	path := filepath.Join(dir, fileName)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteFile writes content to dir/fileName and returns the path
func WriteFile(t testing.TB, dir, fileName, content string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", fileName, err)
	}
	return path
}
