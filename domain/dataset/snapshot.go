package dataset

import (
	"time"

	"sheetpivot/domain/core"
	"sheetpivot/domain/table"
)

// FilterSpec records the keyword filter that derived a snapshot from its parent
type FilterSpec struct {
	Column  string `json:"column"`
	Keyword string `json:"keyword"`
}

// TableSnapshot is a pivoted table together with where it came from
type TableSnapshot struct {
	ID        core.TableID `json:"id"`
	Source    string       `json:"source"` // file name or path the sheet was read from
	Sheet     string       `json:"sheet"`
	HeaderRow int          `json:"header_row"`
	GapPolicy string       `json:"gap_policy"`

	// Set on snapshots produced by filtering another snapshot
	ParentID core.TableID `json:"parent_id,omitempty"`
	Filter   *FilterSpec  `json:"filter,omitempty"`

	Headers   []string    `json:"headers"`
	RowCount  int         `json:"row_count"`
	Table     table.Table `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewSnapshot wraps a freshly built table
func NewSnapshot(source, sheetName string, headerRow int, gaps table.GapPolicy, t table.Table) *TableSnapshot {
	return &TableSnapshot{
		ID:        core.NewTableID(),
		Source:    source,
		Sheet:     sheetName,
		HeaderRow: headerRow,
		GapPolicy: gaps.String(),
		Headers:   t.Headers(),
		RowCount:  t.RowCount(),
		Table:     t,
		CreatedAt: time.Now().UTC(),
	}
}

// Derive creates a child snapshot holding the result of filtering s
func (s *TableSnapshot) Derive(filter FilterSpec, t table.Table) *TableSnapshot {
	child := NewSnapshot(s.Source, s.Sheet, s.HeaderRow, table.GapPad, t)
	child.GapPolicy = s.GapPolicy
	child.ParentID = s.ID
	child.Filter = &filter
	return child
}
