package docxdoc

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rangel3l/sem-colar-system/model"
)

// Options configures a DOCX extraction run.
type Options struct {
	// AssetDir receives images extracted from the header part.
	AssetDir string

	// Logger for diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Extract parses the DOCX at path into a structured document.
func Extract(ctx context.Context, path string, opts Options) (*model.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	r := &reader{zip: &zr.Reader, log: log, assetDir: opts.AssetDir}

	var docXML documentXML
	if err := r.parsePart("word/document.xml", &docXML); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	doc := &model.SourceDocument{
		Path: path,
		// DOCX has no fixed pages; geometry defaults to A4.
		PageWidth:  model.MMToPt(model.A4WidthMM),
		PageHeight: model.MMToPt(model.A4HeightMM),
	}

	r.fillBody(doc, &docXML.Body)
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	doc.FullText = joinBlocks(doc.Blocks)

	if err := r.fillHeader(doc, &docXML.Body); err != nil {
		log.Warn("header extraction failed", "error", err)
	}
	if opts.AssetDir != "" {
		if err := r.exportBodyImages(doc, &docXML.Body); err != nil {
			log.Warn("body image extraction failed", "error", err)
		}
	}
	doc.PreserveHeader = doc.Header.Kind != model.HeaderNone || len(doc.HeaderImages) > 0
	return doc, nil
}

type reader struct {
	zip      *zip.Reader
	log      *slog.Logger
	assetDir string
}

// fillBody converts body elements into blocks in order, with tables
// flagged and decomposed into cell rows.
func (r *reader) fillBody(doc *model.SourceDocument, body *bodyXML) {
	nextID := 0
	for _, el := range body.Elements {
		switch {
		case el.Paragraph != nil:
			block := paragraphBlock(nextID, el.Paragraph)
			if block == nil {
				continue
			}
			doc.Blocks = append(doc.Blocks, block)
			nextID++

		case el.Table != nil:
			rows := tableRows(el.Table)
			if len(rows) == 0 {
				continue
			}
			block := model.NewTextBlock(nextID, rowsAsText(rows))
			block.IsTable = true
			doc.Blocks = append(doc.Blocks, block)
			doc.Tables = append(doc.Tables, &model.Table{
				BlockID:      nextID,
				Rows:         rows,
				HasHeaderRow: len(rows) > 1,
			})
			nextID++
		}
	}
}

// paragraphBlock converts one paragraph into a single-line styled block,
// or nil for an empty paragraph.
func paragraphBlock(id int, p *paragraphXML) *model.TextBlock {
	spans := paragraphSpans(p)
	if len(spans) == 0 {
		return nil
	}
	return &model.TextBlock{
		ID:    id,
		Lines: []model.TextLine{{Spans: spans}},
	}
}

// paragraphSpans flattens a paragraph's runs, hyperlink runs included,
// into styled spans.
func paragraphSpans(p *paragraphXML) []model.TextSpan {
	runs := p.Runs
	for _, h := range p.Hyperlinks {
		runs = append(runs, h.Runs...)
	}

	var spans []model.TextSpan
	for _, run := range runs {
		text := run.Text
		if text == "" {
			continue
		}
		spans = append(spans, model.TextSpan{
			Text:  text,
			Font:  run.Properties.Fonts.ASCII,
			Size:  runSize(run),
			Style: runStyle(run),
			Color: runColor(run),
		})
	}
	if len(spans) > 0 && strings.TrimSpace(flattenSpans(spans)) == "" {
		return nil
	}
	return spans
}

func flattenSpans(spans []model.TextSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}


// runSize converts the half-point sz value, zero when absent.
func runSize(run runXML) float64 {
	if run.Properties.FontSize.Val == "" {
		return 0
	}
	half, err := strconv.ParseFloat(run.Properties.FontSize.Val, 64)
	if err != nil {
		return 0
	}
	return half / 2
}

func runStyle(run runXML) model.TextStyle {
	return model.TextStyle{
		Bold:      run.Properties.Bold.Enabled(),
		Italic:    run.Properties.Italic.Enabled(),
		Underline: run.Properties.Underline.Enabled(),
	}
}

func runColor(run runXML) model.Color {
	val := run.Properties.Color.Val
	if len(val) != 6 || val == "auto" {
		return model.Black
	}
	packed, err := strconv.ParseInt(val, 16, 32)
	if err != nil {
		return model.Black
	}
	return model.ColorFromRGB(int(packed))
}

// tableRows flattens a table into rows of cell text, one string per cell
// with in-cell paragraphs space-joined.
func tableRows(t *tableXML) [][]string {
	var rows [][]string
	for _, tr := range t.Rows {
		var cells []string
		for _, tc := range tr.Cells {
			var parts []string
			for _, p := range tc.Paragraphs {
				if text := strings.TrimSpace(flattenSpans(paragraphSpans(&p))); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// rowsAsText is the plain-text shape of a table block, pipe-separated so
// downstream classification agrees it is tabular.
func rowsAsText(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " | ")
	}
	return strings.Join(lines, "\n")
}

func joinBlocks(blocks []*model.TextBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n\n")
}

// parsePart unmarshals one archive member.
func (r *reader) parsePart(name string, v any) error {
	data, err := r.partContent(name)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

func (r *reader) partContent(name string) ([]byte, error) {
	for _, f := range r.zip.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("missing archive part: %s", name)
}
