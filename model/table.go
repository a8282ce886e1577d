package model

import "strings"

// Table is the decomposed structure of a table-classified block: data rows
// split into best-effort cells, plus whether a header/body divider row was
// detected. Tables are not independently persisted; they reference their
// owning block by ID.
type Table struct {
	BlockID      int
	Rows         [][]string // Data rows only; separator rows excluded
	HasHeaderRow bool
	BBox         BBox
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Text renders the rows tab-joined, one row per line.
func (t *Table) Text() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}
