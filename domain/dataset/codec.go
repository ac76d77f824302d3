package dataset

import (
	"fmt"

	"sheetpivot/domain/sheet"
	"sheetpivot/domain/table"

	"github.com/goccy/go-json"
)

// encodedCell is the stored form of one cell
type encodedCell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

type encodedColumn struct {
	Header string        `json:"header"`
	Cells  []encodedCell `json:"cells"`
}

type encodedTable struct {
	Columns []encodedColumn `json:"columns"`
}

// EncodeTable serialises a table to JSON with columns in header order
func EncodeTable(t table.Table) ([]byte, error) {
	enc := encodedTable{Columns: make([]encodedColumn, 0, len(t))}
	for _, header := range t.Headers() {
		col := t[header]
		ec := encodedColumn{Header: header, Cells: make([]encodedCell, 0, col.Len())}
		for _, cell := range col.All() {
			ec.Cells = append(ec.Cells, encodedCell{
				Row:   cell.Row,
				Col:   cell.Col,
				Type:  cell.Type.String(),
				Value: cell.Value,
			})
		}
		enc.Columns = append(enc.Columns, ec)
	}
	return json.Marshal(enc)
}

// DecodeTable restores a table written by EncodeTable
func DecodeTable(data []byte) (table.Table, error) {
	var enc encodedTable
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	out := make(table.Table, len(enc.Columns))
	for _, ec := range enc.Columns {
		col := table.NewColumn()
		for _, c := range ec.Cells {
			t := sheet.ParseCellType(c.Type)
			value, err := restoreValue(t, c.Value)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", ec.Header, c.Row, err)
			}
			col.Add(sheet.Cell{Row: c.Row, Col: c.Col, Type: t, Value: value})
		}
		out[ec.Header] = col
	}
	return out, nil
}

func restoreValue(t sheet.CellType, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch t {
	case sheet.CellTypeBoolean:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case sheet.CellTypeNumeric:
		if f, ok := raw.(float64); ok {
			return f, nil
		}
	default:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("value %v does not fit cell type %s", raw, t)
}
