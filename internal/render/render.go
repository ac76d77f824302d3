package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"sheetpivot/domain/table"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders t as a pipe table with headers in sorted order and one line
// per row index. Cells a column does not reach, or that hold no value, are empty.
func Markdown(t table.Table) string {
	return pipeTable(t, escape)
}

func pipeTable(t table.Table, esc func(string) string) string {
	headers := t.Headers()
	if len(headers) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("|")
	for _, h := range headers {
		b.WriteString(" " + esc(h) + " |")
	}
	b.WriteString("\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for i := 0; i < t.RowCount(); i++ {
		b.WriteString("|")
		for _, h := range headers {
			v, _ := t[h].Value(i)
			b.WriteString(" " + esc(FormatValue(v)) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders t as an HTML table, titled when title is not empty. Cell text is
// shown literally: markdown syntax and raw HTML in a cell are not interpreted.
func HTML(title string, t table.Table) []byte {
	var doc strings.Builder
	if title != "" {
		fmt.Fprintf(&doc, "# %s\n\n", escapeLiteral(title))
	}
	doc.WriteString(pipeTable(t, escapeLiteral))

	p := parser.NewWithExtensions(parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.SkipHTML | html.CompletePage, Title: title})
	return markdown.ToHTML([]byte(doc.String()), p, renderer)
}

// FormatValue prints a decoded cell value the way the CLI and tables show it
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// escapeLiteral backslash-escapes every character the markdown parser treats as
// syntax, so the text renders as written
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n' || c == '\r':
			b.WriteByte(' ')
		case bytes.IndexByte(parser.EscapeChars, c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
