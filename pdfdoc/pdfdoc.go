package pdfdoc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/tables"
)

// Options configures a PDF extraction run.
type Options struct {
	// AssetDir receives extracted images and the header raster.
	AssetDir string

	// Logger for per-page diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Extract parses the PDF at path into a structured document.
func Extract(ctx context.Context, path string, opts Options) (*model.SourceDocument, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("path", path)

	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		// Relaxed validation failures are common on generated PDFs;
		// text extraction often still works.
		log.Warn("pdf validation failed, continuing", "error", err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	doc := &model.SourceDocument{Path: path}
	if err := fillPageDims(doc, path); err != nil {
		return nil, err
	}

	detector := tables.NewTextDetector()
	nextID := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blocks, err := readPage(reader, pageNum)
		if err != nil {
			log.Warn("skipping unreadable page", "page", pageNum, "error", err)
			continue
		}
		for _, block := range blocks {
			block.ID = nextID
			nextID++
			if detector.ClassifyBlock(block) {
				block.IsTable = true
				doc.Tables = append(doc.Tables, tables.DecomposeBlock(block))
			}
			doc.Blocks = append(doc.Blocks, block)
		}
	}

	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}

	doc.FullText = joinBlocks(doc.Blocks)
	fillHeader(doc)

	if opts.AssetDir != "" {
		if err := extractImages(doc, path, opts.AssetDir, conf, log); err != nil {
			log.Warn("image extraction failed", "error", err)
		}
		if raster, err := renderHeaderRaster(doc, opts.AssetDir); err != nil {
			log.Warn("header raster failed", "error", err)
		} else {
			doc.HeaderRaster = raster
		}
	}

	doc.PreserveHeader = doc.Header.Kind != model.HeaderNone || len(doc.HeaderImages) > 0
	return doc, nil
}

// readPage extracts one page's blocks. The content-stream parser panics
// on some malformed streams, so the panic is converted to an error here
// and the caller skips the page.
func readPage(reader *pdf.Reader, pageNum int) (blocks []*model.TextBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", pageNum)
	}
	content := page.Content()
	pageHeight := pageMediaHeight(page)
	return assembleBlocks(content.Text, pageNum, pageHeight), nil
}

// pageMediaHeight reads the page's MediaBox height, falling back to A4.
func pageMediaHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return model.MMToPt(model.A4HeightMM)
	}
	return box.Index(3).Float64() - box.Index(1).Float64()
}

// fillPageDims records the first page's dimensions in points.
func fillPageDims(doc *model.SourceDocument, path string) error {
	dims, err := api.PageDimsFile(path)
	if err != nil || len(dims) == 0 {
		// Dimension lookup is best effort; assume A4.
		doc.PageWidth = model.MMToPt(model.A4WidthMM)
		doc.PageHeight = model.MMToPt(model.A4HeightMM)
		return nil
	}
	doc.PageWidth = dims[0].Width
	doc.PageHeight = dims[0].Height
	return nil
}

// fillHeader collects page-1 content above the header cutoff into the
// document's tagged header: literal run positions when any span has
// visible text, the raw block form otherwise.
func fillHeader(doc *model.SourceDocument) {
	cutoff := model.HeaderHeight(doc.PageHeight)

	var runs []model.PositionedRun
	var headerBlocks []*model.TextBlock
	for _, block := range doc.Blocks {
		if block.Page != 1 || block.BBox.Top() >= cutoff {
			continue
		}
		headerBlocks = append(headerBlocks, block)
		for _, line := range block.Lines {
			for _, span := range line.Spans {
				if strings.TrimSpace(span.Text) == "" {
					continue
				}
				runs = append(runs, model.PositionedRun{
					Text:  span.Text,
					Font:  span.Font,
					Size:  span.Size,
					Style: span.Style,
					Color: span.Color,
					X:     span.BBox.Left(),
					Y:     span.BBox.Top(),
				})
			}
		}
	}

	switch {
	case len(runs) > 0:
		doc.Header = model.HeaderContent{Kind: model.HeaderPositionedRuns, Runs: runs}
	case len(headerBlocks) > 0:
		doc.Header = model.HeaderContent{Kind: model.HeaderPDFBlocks, Blocks: headerBlocks}
	}
}

func joinBlocks(blocks []*model.TextBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n\n")
}
