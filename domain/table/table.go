package table

import (
	"maps"
	"slices"
)

// Table maps a header name to its column. Columns built by Build or Filter all
// hold the same number of rows.
type Table map[string]*Column

// Headers returns the header names in sorted order
func (t Table) Headers() []string {
	return slices.Sorted(maps.Keys(t))
}

// RowCount returns the length of the longest column
func (t Table) RowCount() int {
	n := 0
	for _, col := range t {
		if col != nil && col.Len() > n {
			n = col.Len()
		}
	}
	return n
}

// Aligned reports whether every column has the same length
func (t Table) Aligned() bool {
	n := -1
	for _, col := range t {
		if col == nil {
			continue
		}
		if n == -1 {
			n = col.Len()
			continue
		}
		if col.Len() != n {
			return false
		}
	}
	return true
}
