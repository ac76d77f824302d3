package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sheetpivot/domain/core"
	"sheetpivot/domain/sheet"
	"sheetpivot/domain/table"
	"sheetpivot/internal"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet file with one selected sheet. The file stays
// open until Close is called.
type Workbook struct {
	path    string
	file    *excelize.File
	sheet   string
	maxRows int
	log     *internal.Logger
}

// Open opens the workbook at path and selects its active sheet
func Open(path string) (*Workbook, error) {
	return OpenSheet(path, "")
}

// OpenSheet opens the workbook at path and selects sheetName, or the active sheet
// when sheetName is empty or does not exist
func OpenSheet(path, sheetName string) (*Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	w := &Workbook{
		path:  path,
		file:  f,
		sheet: f.GetSheetName(f.GetActiveSheetIndex()),
		log:   internal.DefaultLogger.Named("workbook"),
	}
	if sheetName != "" && !w.ChangeSheet(sheetName) {
		w.log.Warn("sheet %q not found in %s, using active sheet %q", sheetName, path, w.sheet)
	}
	if w.sheet == "" {
		f.Close()
		return nil, fmt.Errorf("%w: workbook %s has no sheets", core.ErrSheetNotFound, path)
	}

	w.log.Debug("opened %s in %.2fms (sheet %q)", path, float64(time.Since(startTime).Nanoseconds())/1e6, w.sheet)
	return w, nil
}

// ChangeSheet selects sheetName. It returns false, leaving the selection as it
// was, when the workbook has no such sheet.
func (w *Workbook) ChangeSheet(sheetName string) bool {
	idx, err := w.file.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return false
	}
	w.sheet = w.file.GetSheetName(idx)
	return true
}

// Path returns the file the workbook was opened from
func (w *Workbook) Path() string {
	return w.path
}

// SheetName returns the selected sheet
func (w *Workbook) SheetName() string {
	return w.sheet
}

// SheetNames lists every sheet in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Grid reads the selected sheet into memory. Empty cells are left absent; a
// formula cell with no cached value is kept as FORMULA with an empty string.
func (w *Workbook) Grid() (*sheet.Grid, error) {
	readStart := time.Now()
	rows, err := w.file.GetRows(w.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", w.sheet, err)
	}
	if w.maxRows > 0 && len(rows) > w.maxRows {
		w.log.Warn("sheet %q has %d rows, reading the first %d", w.sheet, len(rows), w.maxRows)
		rows = rows[:w.maxRows]
	}

	grid := sheet.NewGrid(w.sheet)
	for r, row := range rows {
		for c, raw := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("invalid cell position (%d, %d): %w", r, c, err)
			}
			formula, err := w.file.GetCellFormula(w.sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("failed to read formula of %s: %w", axis, err)
			}
			// a formula without a cached value still occupies its position
			if raw == "" && formula == "" {
				continue
			}
			cellType, err := w.file.GetCellType(w.sheet, axis)
			if err != nil {
				return nil, fmt.Errorf("failed to read type of %s: %w", axis, err)
			}
			t, value := convertCell(cellType, formula, raw)
			grid.SetCell(r, c, t, value)
		}
	}
	grid.SetRowCount(len(rows))

	w.log.Debug("sheet %q read in %.2fms (%d rows)", w.sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return grid, nil
}

// ColumnRepresentation pivots the selected sheet using headerRow as the header
func (w *Workbook) ColumnRepresentation(headerRow int, opts ...table.BuildOption) (table.Table, error) {
	grid, err := w.Grid()
	if err != nil {
		return nil, err
	}
	return table.Build(grid, headerRow, opts...)
}

// Filter keeps the rows of t whose column matches keyword
func (w *Workbook) Filter(t table.Table, column, keyword string) (table.Table, error) {
	return table.Filter(t, column, keyword)
}

// convertCell maps an excelize cell to a sheet cell type and value. A cell with a
// formula is FORMULA carrying its cached display value.
func convertCell(cellType excelize.CellType, formula, raw string) (sheet.CellType, any) {
	if formula != "" {
		return sheet.CellTypeFormula, raw
	}
	switch cellType {
	case excelize.CellTypeBool:
		return sheet.CellTypeBoolean, raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return sheet.CellTypeNumeric, f
		}
		if cellType == excelize.CellTypeUnset {
			return sheet.CellTypeString, raw
		}
		return sheet.CellTypeOther, raw
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return sheet.CellTypeString, raw
	case excelize.CellTypeFormula:
		return sheet.CellTypeFormula, raw
	case excelize.CellTypeError:
		return sheet.CellTypeError, raw
	default:
		return sheet.CellTypeOther, raw
	}
}
