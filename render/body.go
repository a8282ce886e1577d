package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rangel3l/sem-colar-system/markup"
	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/tables"
)

var errNoHeaderContent = errors.New("no preserved header content")

var instructions = []string{
	"1. Leia todas as questões atentamente.",
	"2. Cada questão tem apenas uma resposta correta.",
	"3. Não é permitido consultar materiais externos durante a prova.",
}

// drawBody draws the instruction banner and then every question in
// order, paginating as the cursor reaches the footer band.
func (r *Renderer) drawBody(page *pageState, doc *model.SourceDocument, questions []model.Question, seg SegmentFlags) {
	page.rule(page.y)
	page.y += questionGap

	heading := textStyle{Family: "Helvetica", Size: 11, Color: model.Black}
	page.text(pageMargin, page.y, "INSTRUÇÕES:", heading)
	page.y += lineStep

	for _, inst := range instructions {
		page.text(pageMargin+10, page.y, inst, bodyStyle())
		page.y += lineStep
	}

	page.y += 10
	page.rule(page.y)
	page.y += questionGap

	for i, q := range questions {
		r.drawQuestion(page, doc, q, i+1, seg)
		page.advance(questionGap)
	}
}

// drawQuestion draws one statement with its alternatives. Statements
// whose source block was table-classified redraw as a bordered grid.
func (r *Renderer) drawQuestion(page *pageState, doc *model.SourceDocument, q model.Question, number int, seg SegmentFlags) {
	statement := q.Statement
	if !seg.HasOwnNumbering && !seg.UsesQuestionWord {
		statement = fmt.Sprintf("%d. %s", number, statement)
	}

	style := statementStyle(doc, q)

	if table := statementTable(doc, q); table != nil {
		r.drawTable(page, table)
	} else {
		prose, inlineTables := splitInlineTables(statement)
		drawWrapped(page, prose, pageMargin, pageMargin, style)
		for _, t := range inlineTables {
			page.advance(5)
			r.drawTable(page, t)
		}
	}

	page.advance(5)
	for _, alt := range q.Alternatives {
		drawWrapped(page, alt, pageMargin+altIndent, pageMargin+altWrapIndent, bodyStyle())
	}
}

// statementStyle picks a font from the question's source block spans,
// keeping the default body style for synthetic or rewritten questions.
func statementStyle(doc *model.SourceDocument, q model.Question) textStyle {
	if doc == nil || q.BlockID < 0 {
		return bodyStyle()
	}
	block := doc.BlockByID(q.BlockID)
	if block == nil {
		return bodyStyle()
	}
	span := block.FirstSpan()
	if span == nil {
		return bodyStyle()
	}
	style := styleForSpan(*span)
	style.Size = 10
	return style
}

// statementTable resolves a table-classified statement back to its
// structured record via the block ID, with a fresh decomposition of the
// block text as the fallback.
func statementTable(doc *model.SourceDocument, q model.Question) *model.Table {
	if doc == nil || q.BlockID < 0 {
		return nil
	}
	block := doc.BlockByID(q.BlockID)
	if block == nil || !block.IsTable {
		return nil
	}
	if t := doc.TableForBlock(q.BlockID); t != nil {
		return t
	}
	return tables.DecomposeBlock(block)
}

// splitInlineTables separates a statement's prose from any table markup
// fragments folded in by segmentation.
func splitInlineTables(statement string) (string, []*model.Table) {
	if !markup.HasTable(statement) {
		return statement, nil
	}
	var parsed []*model.Table
	for _, fragment := range markup.ExtractTables(statement) {
		if t := markup.ParseTable(fragment); t != nil {
			parsed = append(parsed, t)
		}
	}
	return strings.TrimSpace(markup.StripTables(statement)), parsed
}

// drawWrapped renders text with greedy word wrapping. Source line breaks
// are preserved; continuation lines of a wrapped line use wrapIndent.
func drawWrapped(page *pageState, text string, indent, wrapIndent float64, style textStyle) {
	available := page.width - indent - pageMargin
	measure := func(s string) float64 { return page.measure(s, style) }

	for _, sourceLine := range strings.Split(text, "\n") {
		if strings.TrimSpace(sourceLine) == "" {
			continue
		}
		wrapped := wrapLine(sourceLine, available, measure)
		for i, line := range wrapped {
			x := indent
			if i > 0 {
				x = wrapIndent
			}
			page.text(x, page.y, line, style)
			page.advance(lineStep)
		}
	}
}

// wrapLine splits one source line into rendered lines by greedy fill:
// words accumulate while the rendered width fits, the overflowing word
// starts the next line.
func wrapLine(line string, available float64, measure func(string) float64) []string {
	if measure(line) <= available {
		return []string{line}
	}

	var out []string
	var current string
	for _, word := range strings.Fields(line) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= available {
			current = candidate
		} else {
			if current != "" {
				out = append(out, current)
			}
			current = word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// drawTable redraws a structured table as a bordered grid with centered
// cells and a bold header row when one was detected.
func (r *Renderer) drawTable(page *pageState, table *model.Table) {
	cols := table.ColCount()
	if cols == 0 {
		return
	}
	colWidth := (page.width - 2*pageMargin) / float64(cols)

	for i, row := range table.Rows {
		if page.y+tableRowHeight > page.height-footerSafety {
			page.breakPage()
		}

		style := bodyStyle()
		if table.HasHeaderRow && i == 0 {
			style.Bold = true
		}

		for j := 0; j < cols; j++ {
			x := pageMargin + float64(j)*colWidth
			page.pdf.Rect(x, page.y, colWidth, tableRowHeight, "D")
			if j >= len(row) {
				continue
			}
			cell := row[j]
			width := page.measure(cell, style)
			page.text(x+(colWidth-width)/2, page.y+tableRowHeight/2+style.Size/2-1, cell, style)
		}
		page.y += tableRowHeight
	}
	page.advance(questionGap)
}

func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("header draw panic: %v", rec)
}

// imageOptionsFor tells the PDF engine the image type when the file
// extension is unambiguous.
func imageOptionsFor(path string) fpdf.ImageOptions {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return fpdf.ImageOptions{ImageType: "PNG"}
	case ".jpg", ".jpeg":
		return fpdf.ImageOptions{ImageType: "JPEG"}
	default:
		return fpdf.ImageOptions{}
	}
}
