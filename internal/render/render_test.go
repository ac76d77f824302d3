package render

import (
	"strings"
	"testing"

	"sheetpivot/domain/table"
	"sheetpivot/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tbl, err := table.Build(testkit.PeopleGrid(), 0)
	require.NoError(t, err)

	want := "| Age | Name |\n" +
		"| --- | --- |\n" +
		"| 30 | Ann |\n" +
		"| 41 | Bo |\n" +
		"| 19 | Ann |\n"
	assert.Equal(t, want, Markdown(tbl))
}

func TestMarkdownRaggedAndEscaped(t *testing.T) {
	grid := testkit.GridFromRows("ragged", [][]any{
		{"A|B", "C"},
		{"x", true},
		{"y"},
	})
	tbl, err := table.Build(grid, 0, table.WithGapPolicy(table.GapSkip))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(Markdown(tbl)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `| A\|B | C |`, lines[0])
	assert.Equal(t, "| x | true |", lines[2])
	assert.Equal(t, "| y |  |", lines[3])
}

func TestMarkdownEmpty(t *testing.T) {
	assert.Empty(t, Markdown(table.Table{}))
}

func TestHTML(t *testing.T) {
	tbl, err := table.Build(testkit.PeopleGrid(), 0)
	require.NoError(t, err)

	out := string(HTML("people", tbl))
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Age</th>")
	assert.Contains(t, out, "<td>Bo</td>")
	assert.Contains(t, out, "<title>people</title>")
}

func TestHTMLShowsCellTextLiterally(t *testing.T) {
	grid := testkit.GridFromRows("unsafe", [][]any{
		{"Note", "<b>Head</b>"},
		{"<img src=x onerror=alert(1)>", "**bold** _u_"},
		{"<script>alert(1)</script>", "[x](http://example.com) a--b"},
	})
	tbl, err := table.Build(grid, 0)
	require.NoError(t, err)

	out := string(HTML("<i>t</i>", tbl))
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<strong>")
	assert.NotContains(t, out, "<a href")
	assert.Contains(t, out, "<td>&lt;img src=x onerror=alert(1)&gt;</td>")
	assert.Contains(t, out, "<td>&lt;script&gt;alert(1)&lt;/script&gt;</td>")
	assert.Contains(t, out, "<td>**bold** _u_</td>")
	assert.Contains(t, out, "<td>[x](http://example.com) a--b</td>")
	assert.Contains(t, out, "<th>&lt;b&gt;Head&lt;/b&gt;</th>")
	assert.Contains(t, out, "<title>&lt;i&gt;t&lt;/i&gt;</title>")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "30", FormatValue(30.0))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "false", FormatValue(false))
	assert.Equal(t, "x", FormatValue("x"))
}
