package excel

import (
	"sheetpivot/adapters/datareadiness/coercer"
)

// ExcelConfig holds configuration for spreadsheet sources
type ExcelConfig struct {
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	// CSVComma is the field separator for CSV files
	CSVComma rune `json:"csv_comma"`
	// MaxRows stops materialising a sheet after this many rows; 0 means no limit
	MaxRows int `json:"max_rows"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
		CSVComma:       ',',
	}
}
