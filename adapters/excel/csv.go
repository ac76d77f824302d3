package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sheetpivot/adapters/datareadiness/coercer"
	"sheetpivot/domain/sheet"
)

// ReadCSV reads CSV text into a grid named name. Rows may have differing field
// counts; each field is typed by tc and empty fields are left absent.
func ReadCSV(r io.Reader, name string, tc *coercer.TypeCoercer, comma rune) (*sheet.Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if comma != 0 {
		reader.Comma = comma
	}

	grid := sheet.NewGrid(name)
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}
		grid.SetRowCount(row + 1)
		for col, field := range record {
			t, value := tc.CoerceCell(field)
			if t == sheet.CellTypeBlank {
				continue
			}
			grid.SetCell(row, col, t, value)
		}
	}
	return grid, nil
}

// OpenCSV reads the CSV file at path. The grid is named after the file.
func OpenCSV(path string, tc *coercer.TypeCoercer, comma rune) (*sheet.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(file, name, tc, comma)
}
