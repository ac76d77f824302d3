package coercer

import (
	"math"
	"strconv"
	"strings"

	"sheetpivot/domain/sheet"
)

// TypeCoercer assigns a cell type to text read from untyped sources such as CSV
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	InternationalNumbers bool `json:"international_numbers"` // accept (123), currency symbols, %, European decimals
	TrimSpace            bool `json:"trim_space"`            // trim text before typing it
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		InternationalNumbers: false,
		TrimSpace:            true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceCell types a raw text value. Empty text is BLANK, numbers are NUMERIC,
// true/false are BOOLEAN, anything else is STRING with the text kept as is.
func (c *TypeCoercer) CoerceCell(raw string) (sheet.CellType, any) {
	text := raw
	if c.config.TrimSpace {
		text = strings.TrimSpace(raw)
	}
	if strings.TrimSpace(text) == "" {
		return sheet.CellTypeBlank, nil
	}
	if f, ok := c.tryParseNumeric(text); ok {
		return sheet.CellTypeNumeric, f
	}
	if b, ok := tryParseBoolean(text); ok {
		return sheet.CellTypeBoolean, b
	}
	return sheet.CellTypeString, text
}

// TypeAnalysis summarises how a sample of text values would coerce
type TypeAnalysis struct {
	TotalCount   int     `json:"total_count"`
	ValidCount   int     `json:"valid_count"`
	NumericCount int     `json:"numeric_count"`
	BooleanCount int     `json:"boolean_count"`
	NumericRatio float64 `json:"numeric_ratio"`
	BooleanRatio float64 `json:"boolean_ratio"`
}

// AnalyzeTypeDistribution counts how many non-empty values parse as numbers or
// booleans
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.tryParseNumeric(strings.TrimSpace(v)); ok {
			analysis.NumericCount++
		}
		if _, ok := tryParseBoolean(v); ok {
			analysis.BooleanCount++
		}
	}
	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
		analysis.BooleanRatio = float64(analysis.BooleanCount) / float64(analysis.ValidCount)
	}
	return analysis
}

// tryParseNumeric parses plain numbers, and with InternationalNumbers also
// parentheses negatives, currency symbols, percentages and European decimals
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	if c.config.InternationalNumbers {
		cleanVal = normalizeInternational(cleanVal)
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

func normalizeInternational(cleanVal string) string {
	// (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY", "%"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	switch {
	case hasComma && (hasPeriod || hasSpace):
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) <= 2 && isDigits(afterComma) {
			// 1.234,56 or 1 234,56
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
		}
	case hasComma:
		// 1,200 groups thousands, 12,5 is a decimal comma
		if afterComma := cleanVal[strings.LastIndex(cleanVal, ",")+1:]; len(afterComma) == 3 {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		}
	default:
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}
	return cleanVal
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tryParseBoolean accepts only true and false, in any case
func tryParseBoolean(strVal string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(strVal)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
