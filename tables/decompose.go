package tables

import (
	"regexp"
	"strings"

	"github.com/rangel3l/sem-colar-system/model"
)

// Characters that make up header/body divider rows ("----", "+===+").
const fillChars = "-+="

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Decompose splits a tabular block's text into data rows and cells.
// Divider rows are excluded from the data; a divider in the second
// position marks the first row as a header row.
func Decompose(text string) *model.Table {
	lines := strings.Split(text, "\n")

	table := &model.Table{BlockID: -1}

	if len(lines) > 1 && isFillRow(lines[1]) {
		table.HasHeaderRow = true
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isFillRow(line) {
			continue
		}
		table.Rows = append(table.Rows, SplitRow(line))
	}

	return table
}

// DecomposeBlock decomposes a block's text and records the owning block's
// ID and bounding box on the result.
func DecomposeBlock(block *model.TextBlock) *model.Table {
	table := Decompose(block.Text())
	table.BlockID = block.ID
	table.BBox = block.BBox
	return table
}

// SplitRow splits one table line into cells. Delimiters are tried in
// priority order: pipe, tab, then runs of two or more spaces. Empty edge
// cells produced by leading/trailing pipes are stripped.
func SplitRow(line string) []string {
	var cells []string

	switch {
	case strings.Contains(line, "|"):
		cells = trimCells(strings.Split(line, "|"))
		cells = stripEmptyEdges(cells)
	case strings.Contains(line, "\t"):
		cells = trimCells(strings.Split(line, "\t"))
	case strings.Contains(line, "  "):
		cells = trimCells(multiSpaceRe.Split(line, -1))
	default:
		cells = []string{strings.TrimSpace(line)}
	}

	if len(cells) == 0 {
		cells = []string{strings.TrimSpace(line)}
	}
	return cells
}

// isFillRow reports whether the line is a header/body divider: only fill
// characters, whitespace, and cell pipes, with at least one fill
// character present ("----", "+===+", "---|---").
func isFillRow(line string) bool {
	fill := false
	for _, ch := range line {
		if ch == ' ' || ch == '\t' || ch == '|' {
			continue
		}
		if !strings.ContainsRune(fillChars, ch) {
			return false
		}
		fill = true
	}
	return fill
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func stripEmptyEdges(cells []string) []string {
	for len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
