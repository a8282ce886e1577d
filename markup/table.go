// Package markup builds and parses the inline table fragments embedded in
// question statements.
//
// Segmentation folds table blocks into the open question's statement as a
// small HTML-like fragment so the statement stays a single string. The
// renderer prefers the structured table record relinked by block ID, and
// falls back to parsing the fragment when no record can be found.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rangel3l/sem-colar-system/model"
)

const (
	tableStyle      = "border-collapse: collapse; width: 100%; margin: 10px 0;"
	cellStyle       = "border: 1px solid #ddd; padding: 8px; text-align: left;"
	headerCellStyle = cellStyle + " background-color: #f2f2f2; font-weight: bold;"
)

// BuildTable renders a decomposed table as an inline markup fragment. When
// the table carries a header row, its cells become th elements.
func BuildTable(table *model.Table) string {
	var sb strings.Builder
	sb.WriteString(`<table style='` + tableStyle + `'>`)

	for i, row := range table.Rows {
		header := table.HasHeaderRow && i == 0
		tag, style := "td", cellStyle
		if header {
			tag, style = "th", headerCellStyle
		}

		sb.WriteString("<tr>")
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			sb.WriteString("<" + tag + " style='" + style + "'>")
			sb.WriteString(html.EscapeString(cell))
			sb.WriteString("</" + tag + ">")
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</table>")
	return sb.String()
}

// ParseTable parses a table fragment back into rows. The first row is
// reported as a header row when it is built of th cells. Returns nil if
// the fragment contains no table.
func ParseTable(fragment string) *model.Table {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil
	}

	for _, n := range nodes {
		if t := findTable(n); t != nil {
			return parseTableNode(t)
		}
	}
	return nil
}

// HasTable reports whether the text contains an inline table fragment.
func HasTable(text string) bool {
	return strings.Contains(text, "<table")
}

// StripTables removes inline table fragments from statement text, leaving
// the surrounding prose. Used when drawing a statement whose tables are
// rendered separately as grids.
func StripTables(text string) string {
	for {
		start := strings.Index(text, "<table")
		if start < 0 {
			return strings.TrimRight(text, "\n ")
		}
		end := strings.Index(text[start:], "</table>")
		if end < 0 {
			return strings.TrimRight(text[:start], "\n ")
		}
		text = text[:start] + text[start+end+len("</table>"):]
	}
}

// ExtractTables returns every inline table fragment present in the text.
func ExtractTables(text string) []string {
	var fragments []string
	for {
		start := strings.Index(text, "<table")
		if start < 0 {
			return fragments
		}
		end := strings.Index(text[start:], "</table>")
		if end < 0 {
			return fragments
		}
		fragments = append(fragments, text[start:start+end+len("</table>")])
		text = text[start+end+len("</table>"):]
	}
}

func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Table {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

func parseTableNode(table *html.Node) *model.Table {
	result := &model.Table{BlockID: -1}

	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var row []string
			headerRow := false
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.DataAtom {
				case atom.Th:
					headerRow = true
					row = append(row, nodeText(c))
				case atom.Td:
					row = append(row, nodeText(c))
				}
			}
			if len(row) > 0 {
				if headerRow && len(result.Rows) == 0 {
					result.HasHeaderRow = true
				}
				result.Rows = append(result.Rows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)

	if len(result.Rows) == 0 {
		return nil
	}
	return result
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
