package table

import (
	"fmt"
	"slices"
	"strings"

	"sheetpivot/domain/core"
	"sheetpivot/domain/sheet"
)

// GapPolicy decides what the scan does with a position that has no cell in a row
type GapPolicy int

const (
	// GapPad records a BLANK placeholder so every column gets one entry per scanned row
	GapPad GapPolicy = iota
	// GapSkip leaves the position out, so sparse columns come out shorter
	GapSkip
)

// String returns the config name of the policy
func (p GapPolicy) String() string {
	if p == GapSkip {
		return "skip"
	}
	return "pad"
}

// ParseGapPolicy parses "pad" or "skip". An empty string selects GapPad.
func ParseGapPolicy(s string) (GapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pad":
		return GapPad, nil
	case "skip":
		return GapSkip, nil
	default:
		return GapPad, fmt.Errorf("unknown gap policy %q (want pad or skip)", s)
	}
}

// DuplicateHook is told about a header that appears more than once. The column at
// position dropped is replaced by the one at position kept.
type DuplicateHook func(header string, dropped, kept int)

type buildOptions struct {
	gaps      GapPolicy
	duplicate DuplicateHook
}

// BuildOption configures Build
type BuildOption func(*buildOptions)

// WithGapPolicy sets how absent cells are handled during the scan
func WithGapPolicy(p GapPolicy) BuildOption {
	return func(o *buildOptions) { o.gaps = p }
}

// WithDuplicateHook registers a callback for duplicate header names
func WithDuplicateHook(fn DuplicateHook) BuildOption {
	return func(o *buildOptions) { o.duplicate = fn }
}

// Build pivots the rows of src into a Table keyed by the names found in headerRow.
// Data rows are read from headerRow+1 to the last physical row. Positions without
// a header are dropped, and a repeated header keeps the right-most column.
func Build(src sheet.Source, headerRow int, opts ...BuildOption) (Table, error) {
	o := buildOptions{gaps: GapPad}
	for _, opt := range opts {
		opt(&o)
	}

	header, err := readHeader(src, headerRow)
	if err != nil {
		return nil, err
	}
	columns := scanColumns(src, headerRow+1, o.gaps)
	return merge(header, columns, o.duplicate), nil
}

// readHeader maps the k-th present cell of the header row to its text. k counts
// present cells only, not raw column positions.
func readHeader(src sheet.Source, headerRow int) (map[int]string, error) {
	if headerRow < 0 || headerRow >= src.RowCount() {
		return nil, core.NewInvalidHeaderError(headerRow, fmt.Sprintf("outside sheet of %d rows", src.RowCount()))
	}
	row, ok := src.Row(headerRow)
	if !ok {
		return nil, core.NewInvalidHeaderError(headerRow, "row does not exist")
	}

	header := make(map[int]string)
	k := 0
	for pos := 0; pos <= row.LastCellPosition(); pos++ {
		cell, ok := row.Cell(pos)
		if !ok {
			continue
		}
		name, ok := cell.StringValue()
		if !ok {
			return nil, core.NewInvalidHeaderError(headerRow,
				fmt.Sprintf("cell at column %d is %s, not a string", pos, cell.Type))
		}
		header[k] = name
		k++
	}
	return header, nil
}

// scanColumns collects one column per position over rows [start, RowCount).
// Columns are created on first encounter, so a position seen in any row gets one.
func scanColumns(src sheet.Source, start int, gaps GapPolicy) map[int]*Column {
	end := src.RowCount()
	columns := make(map[int]*Column)

	width := 0
	if gaps == GapPad {
		for r := start; r < end; r++ {
			if row, ok := src.Row(r); ok && row.LastCellPosition()+1 > width {
				width = row.LastCellPosition() + 1
			}
		}
	}

	for r := start; r < end; r++ {
		row, present := src.Row(r)
		last := -1
		if present {
			last = row.LastCellPosition()
		}
		if gaps == GapPad {
			last = width - 1
		}

		for pos := 0; pos <= last; pos++ {
			col, ok := columns[pos]
			if !ok {
				col = &Column{}
				columns[pos] = col
			}

			var cell sheet.Cell
			found := false
			if present {
				cell, found = row.Cell(pos)
			}
			switch {
			case found:
				col.AddIfAbsent(cell)
			case gaps == GapPad:
				col.AddIfAbsent(sheet.Blank(r, pos))
			}
		}
	}
	return columns
}

func merge(header map[int]string, columns map[int]*Column, hook DuplicateHook) Table {
	positions := make([]int, 0, len(columns))
	for pos := range columns {
		positions = append(positions, pos)
	}
	slices.Sort(positions)

	out := make(Table, len(columns))
	owner := make(map[string]int, len(columns))
	for _, pos := range positions {
		name, ok := header[pos]
		if !ok {
			continue
		}
		if prev, dup := owner[name]; dup && hook != nil {
			hook(name, prev, pos)
		}
		out[name] = columns[pos]
		owner[name] = pos
	}
	return out
}
