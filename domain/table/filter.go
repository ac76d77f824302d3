package table

import (
	"strings"

	"sheetpivot/domain/core"
	"sheetpivot/domain/sheet"
)

// MatchingRows returns the row indices of col whose STRING cell equals keyword,
// ignoring case. Cells of any other type never match.
func MatchingRows(col *Column, keyword string) []int {
	var rows []int
	for i, cell := range col.All() {
		if cell.Type != sheet.CellTypeString {
			continue
		}
		if s, ok := cell.Value.(string); ok && strings.EqualFold(s, keyword) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Filter keeps the rows whose cell in column matches keyword and returns them as a
// new table with the same headers. t and its columns are left untouched.
func Filter(t Table, column, keyword string) (Table, error) {
	target, ok := t[column]
	if !ok || target == nil {
		return nil, core.NewColumnNotFoundError(column)
	}

	matched := make(map[int]struct{})
	for _, i := range MatchingRows(target, keyword) {
		matched[i] = struct{}{}
	}

	out := make(Table, len(t))
	for name, col := range t {
		filtered := &Column{}
		if col != nil {
			for i, cell := range col.All() {
				if _, ok := matched[i]; ok {
					filtered.Add(cell)
				}
			}
		}
		out[name] = filtered
	}
	return out, nil
}
