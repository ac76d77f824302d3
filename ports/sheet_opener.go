package ports

import (
	"context"

	"sheetpivot/domain/sheet"
)

// OpenedSheet is a materialised sheet plus the name it was read from
type OpenedSheet struct {
	Grid  *sheet.Grid
	Sheet string
}

// SheetOpener reads one sheet of a spreadsheet file into memory. An empty sheet
// name, or one that does not exist, selects the workbook's active sheet.
type SheetOpener interface {
	OpenSheet(ctx context.Context, path, sheetName string) (*OpenedSheet, error)
	SheetNames(ctx context.Context, path string) ([]string, error)
}
