package sheet

import "strings"

// CellType is the semantic kind of a cell's content
type CellType int

const (
	CellTypeBoolean CellType = iota
	CellTypeNumeric
	CellTypeString
	CellTypeFormula
	CellTypeBlank
	CellTypeError
	CellTypeOther
)

var cellTypeNames = map[CellType]string{
	CellTypeBoolean: "BOOLEAN",
	CellTypeNumeric: "NUMERIC",
	CellTypeString:  "STRING",
	CellTypeFormula: "FORMULA",
	CellTypeBlank:   "BLANK",
	CellTypeError:   "ERROR",
	CellTypeOther:   "OTHER",
}

// String returns the upper-case name of the type
func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return "OTHER"
}

// ParseCellType maps a type name back to its CellType. Unknown names map to OTHER.
func ParseCellType(name string) CellType {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range cellTypeNames {
		if n == upper {
			return t
		}
	}
	return CellTypeOther
}

// CellID identifies a cell by its 0-based position in the sheet
type CellID struct {
	Row int
	Col int
}

// Cell is a single typed value read from a sheet.
// Value holds a bool, float64, string or nil.
type Cell struct {
	Row   int
	Col   int
	Type  CellType
	Value any
}

// ID returns the identity token of the cell
func (c Cell) ID() CellID {
	return CellID{Row: c.Row, Col: c.Col}
}

// Blank creates a placeholder cell that holds no value
func Blank(row, col int) Cell {
	return Cell{Row: row, Col: col, Type: CellTypeBlank}
}

// StringValue returns the content of a STRING cell. Formula cells report false
// whatever their cached value.
func (c Cell) StringValue() (string, bool) {
	if c.Type != CellTypeString {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}
