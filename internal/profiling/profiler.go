package profiling

import (
	"sheetpivot/adapters/datareadiness/coercer"
	"sheetpivot/domain/sheet"
	"sheetpivot/domain/table"
)

// ColumnProfile describes the contents of one table column
type ColumnProfile struct {
	Header       string         `json:"header"`
	Count        int            `json:"count"`
	Blank        int            `json:"blank"`
	Distinct     int            `json:"distinct"`
	DominantType string         `json:"dominant_type"`
	Homogeneous  bool           `json:"homogeneous"`
	TypeCounts   map[string]int `json:"type_counts"`

	// Set when the column holds NUMERIC cells
	Numeric *NumericSummary `json:"numeric,omitempty"`
	// Set when the column holds STRING cells; reports how many of them read as
	// numbers or booleans
	Text *coercer.TypeAnalysis `json:"text,omitempty"`
}

// Describe profiles every column of t in header order
func Describe(t table.Table) []ColumnProfile {
	tc := coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	profiles := make([]ColumnProfile, 0, len(t))
	for _, header := range t.Headers() {
		profiles = append(profiles, profileColumn(header, t[header], tc))
	}
	return profiles
}

func profileColumn(header string, col *table.Column, tc *coercer.TypeCoercer) ColumnProfile {
	p := ColumnProfile{
		Header:     header,
		Count:      col.Len(),
		TypeCounts: make(map[string]int),
	}

	counts := make(map[sheet.CellType]int)
	distinct := make(map[any]struct{})
	var text []string
	for i, cell := range col.All() {
		counts[cell.Type]++
		if cell.Type == sheet.CellTypeBlank {
			p.Blank++
		}
		if v, ok := col.Value(i); ok {
			distinct[v] = struct{}{}
		}
		if cell.Type == sheet.CellTypeString {
			if s, ok := cell.Value.(string); ok {
				text = append(text, s)
			}
		}
	}
	p.Distinct = len(distinct)

	dominant, best := sheet.CellTypeBlank, -1
	for t := sheet.CellTypeBoolean; t <= sheet.CellTypeOther; t++ {
		n := counts[t]
		if n == 0 {
			continue
		}
		p.TypeCounts[t.String()] = n
		if n > best {
			dominant, best = t, n
		}
	}
	if p.Count > 0 {
		p.DominantType = dominant.String()
		p.Homogeneous = col.AllOfType(dominant)
	}

	if floats := col.Floats(); len(floats) > 0 {
		if summary, err := Summarize(floats); err == nil {
			p.Numeric = &summary
		}
	}
	if len(text) > 0 {
		analysis := tc.AnalyzeTypeDistribution(text)
		p.Text = &analysis
	}
	return p
}
