package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"sheetpivot/adapters/datareadiness/coercer"
	"sheetpivot/domain/core"
	"sheetpivot/internal"
	"sheetpivot/ports"
)

// SourceKind is the file format a path is read as
type SourceKind string

const (
	SourceXLSX SourceKind = "xlsx"
	SourceCSV  SourceKind = "csv"
)

// DetectSource picks the reader for a file by its extension
func DetectSource(path string) (SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return SourceXLSX, nil
	case ".csv":
		return SourceCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedSource, filepath.Base(path))
	}
}

// DataReader opens CSV and Excel files as materialised sheets
type DataReader struct {
	config  ExcelConfig
	coercer *coercer.TypeCoercer
	log     *internal.Logger
}

var _ ports.SheetOpener = (*DataReader)(nil)

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		log:     internal.DefaultLogger.Named("reader"),
	}
}

// OpenSheet reads one sheet of the file at path into memory. CSV files have a
// single sheet named after the file; sheetName is ignored for them.
func (r *DataReader) OpenSheet(ctx context.Context, path, sheetName string) (*ports.OpenedSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kind, err := DetectSource(path)
	if err != nil {
		return nil, err
	}
	r.log.Info("reading %s file: %s", kind, path)

	switch kind {
	case SourceCSV:
		grid, err := OpenCSV(path, r.coercer, r.config.CSVComma)
		if err != nil {
			return nil, err
		}
		return &ports.OpenedSheet{Grid: grid, Sheet: grid.Name}, nil
	default:
		w, err := OpenSheet(path, sheetName)
		if err != nil {
			return nil, err
		}
		defer w.Close()
		w.maxRows = r.config.MaxRows

		grid, err := w.Grid()
		if err != nil {
			return nil, err
		}
		return &ports.OpenedSheet{Grid: grid, Sheet: w.SheetName()}, nil
	}
}

// SheetNames lists the sheets of the file at path
func (r *DataReader) SheetNames(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kind, err := DetectSource(path)
	if err != nil {
		return nil, err
	}
	if kind == SourceCSV {
		return []string{strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}, nil
	}

	w, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.SheetNames(), nil
}
