package render

import (
	"strings"
	"time"

	"github.com/rangel3l/sem-colar-system/model"
)

// Cursor positions after the header pass, from the page top.
const (
	preservedHeaderBottom = 150
	defaultHeaderBottom   = pageMargin + 50
)

// drawHeader redraws the original header when preservation is on, or the
// minimal default header otherwise. A failure inside the preserved-header
// pass is absorbed: the default header takes its place and the body still
// renders.
func (r *Renderer) drawHeader(page *pageState, doc *model.SourceDocument) {
	if doc != nil && doc.PreserveHeader {
		err := r.drawPreservedHeader(page, doc)
		if err == nil {
			page.y = preservedHeaderBottom
			return
		}
		r.opts.Logger.Warn("preserved header failed, using default", "error", err)
	}
	page.y = r.drawDefaultHeader(page, doc)
}

func (r *Renderer) drawPreservedHeader(page *pageState, doc *model.SourceDocument) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()

	drawHeaderImages(page, doc)

	switch doc.Header.Kind {
	case model.HeaderPositionedRuns:
		drawPositionedRuns(page, doc.Header.Runs)
	case model.HeaderPDFBlocks:
		drawHeaderBlocks(page, doc.Header.Blocks)
	case model.HeaderDocxParagraphs:
		drawHeaderParagraphs(page, doc.Header.Paragraphs)
	case model.HeaderNone:
		if len(doc.HeaderImages) == 0 && doc.Overrides.HeaderImage == "" {
			return errNoHeaderContent
		}
	}

	drawOverrideFields(page, doc.Overrides)
	return page.pdf.Error()
}

// drawHeaderImages places the header images by their millimeter geometry,
// independent of which text branch applies.
func drawHeaderImages(page *pageState, doc *model.SourceDocument) {
	images := doc.HeaderImages
	if doc.Overrides.HeaderImage != "" {
		replacement := model.ImagePlacement{Path: doc.Overrides.HeaderImage}
		replacement.XMM = model.A4WidthMM/2 - 30
		replacement.YMM = 10
		replacement.WidthMM = 60
		replacement.HeightMM = 25
		images = []model.ImagePlacement{replacement}
	}
	for _, img := range images {
		page.drawImageMM(img)
	}
}

func (p *pageState) drawImageMM(img model.ImagePlacement) {
	if img.Path == "" || img.WidthMM <= 0 || img.HeightMM <= 0 {
		return
	}
	p.pdf.ImageOptions(img.Path,
		model.MMToPt(img.XMM), model.MMToPt(img.YMM),
		model.MMToPt(img.WidthMM), model.MMToPt(img.HeightMM),
		false, imageOptionsFor(img.Path), 0, "")
}

// drawPositionedRuns replays PDF header runs at their literal positions.
// Source coordinates are already top-down, matching the page space.
func drawPositionedRuns(page *pageState, runs []model.PositionedRun) {
	for _, run := range runs {
		style := textStyle{
			Family: coreFamily(run.Font),
			Bold:   run.Style.Bold,
			Italic: run.Style.Italic,
			Size:   run.Size,
			Color:  run.Color,
		}
		baseline := run.Y + run.Size
		page.text(run.X, baseline, run.Text, style)
		if run.Style.Underline {
			width := page.measure(run.Text, style)
			page.pdf.Line(run.X, baseline+2, run.X+width, baseline+2)
		}
	}
}

// drawHeaderBlocks replays block/line/span structure span by span.
func drawHeaderBlocks(page *pageState, blocks []*model.TextBlock) {
	for _, block := range blocks {
		for _, line := range block.Lines {
			for _, span := range line.Spans {
				text := strings.TrimSpace(span.Text)
				if text == "" {
					continue
				}
				style := styleForSpan(span)
				baseline := span.BBox.Top() + span.Size
				page.text(span.BBox.Left(), baseline, text, style)
				if span.Style.Underline {
					width := page.measure(text, style)
					page.pdf.Line(span.BBox.Left(), baseline+2, span.BBox.Left()+width, baseline+2)
				}
			}
		}
	}
}

// drawHeaderParagraphs centers each DOCX paragraph by measuring its runs
// and advances a fixed step per paragraph.
func drawHeaderParagraphs(page *pageState, paragraphs []model.HeaderParagraph) {
	y := 30.0
	for _, para := range paragraphs {
		if strings.TrimSpace(para.Text) == "" {
			continue
		}

		total := 0.0
		for _, run := range para.Runs {
			total += page.measure(run.Text, styleForSpan(run))
		}

		x := (page.width - total) / 2
		for _, run := range para.Runs {
			style := styleForSpan(run)
			page.text(x, y, run.Text, style)
			width := page.measure(run.Text, style)
			if run.Style.Underline {
				page.pdf.Line(x, y+2, x+width, y+2)
			}
			x += width
		}
		y += lineStep
	}
}

// drawOverrideFields appends the user-supplied identification fields
// below the preserved content.
func drawOverrideFields(page *pageState, ov model.Overrides) {
	fields := []struct{ label, value string }{
		{"Professor(a)", ov.Teacher},
		{"Disciplina", ov.Subject},
		{"Turma", ov.ClassLabel},
		{"Avaliação", ov.EvaluationType},
	}

	y := float64(preservedHeaderBottom - 2*lineStep)
	style := bodyStyle()
	x := float64(pageMargin)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		line := f.label + ": " + f.value
		page.text(x, y, line, style)
		x += page.measure(line, style) + 20
		if x > page.width-2*pageMargin {
			x = pageMargin
			y += lineStep
		}
	}
}

// drawDefaultHeader is the minimal fallback: title, date, and whatever
// override fields the user filled in. Returns the cursor position below
// the drawn content.
func (r *Renderer) drawDefaultHeader(page *pageState, doc *model.SourceDocument) float64 {
	title := textStyle{Family: "Helvetica", Bold: true, Size: 12, Color: model.Black}
	page.text(pageMargin, pageMargin, r.opts.DefaultTitle, title)

	body := bodyStyle()
	body.Size = 12
	page.text(pageMargin, pageMargin+20, "Data: "+time.Now().Format("02/01/2006"), body)

	if doc == nil {
		return defaultHeaderBottom
	}
	y := pageMargin + 40.0
	for _, field := range []struct{ label, value string }{
		{"Professor(a)", doc.Overrides.Teacher},
		{"Disciplina", doc.Overrides.Subject},
		{"Turma", doc.Overrides.ClassLabel},
		{"Avaliação", doc.Overrides.EvaluationType},
	} {
		if field.value == "" {
			continue
		}
		page.text(pageMargin, y, field.label+": "+field.value, bodyStyle())
		y += lineStep
	}
	if y < defaultHeaderBottom {
		return defaultHeaderBottom
	}
	return y + 10
}
