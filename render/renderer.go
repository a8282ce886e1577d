package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rangel3l/sem-colar-system/model"
)

// Renderer turns a question list plus the original extraction into a
// generated exam PDF and, when a key writer is configured, its answer
// key.
type Renderer struct {
	opts Options
}

// New creates a renderer.
func New(opts Options) (*Renderer, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("render: output directory is required")
	}
	if opts.QR == nil {
		return nil, fmt.Errorf("render: qr encoder is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("render: creating output directory: %w", err)
	}
	return &Renderer{opts: opts.withDefaults()}, nil
}

// Render writes the exam variant and returns the exam path and the
// answer key path. The key path is empty when no key writer is set.
func (r *Renderer) Render(doc *model.SourceDocument, questions []model.Question, seg SegmentFlags, meta ExamMeta) (string, string, error) {
	log := r.opts.Logger.With("exam", meta.ExamID, "version", meta.Version)
	log.Info("rendering exam", "questions", len(questions))

	pdf := fpdf.New("P", "pt", "A4", "")
	if meta.Title == "" {
		meta.Title = "Prova"
	}
	pdf.SetTitle(meta.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	page := &pageState{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  model.MMToPt(model.A4WidthMM),
		height: model.MMToPt(model.A4HeightMM),
		meta:   meta,
		qr:     r.opts.QR,
		log:    log,
	}

	r.drawHeader(page, doc)
	r.drawBody(page, doc, questions, seg)
	page.stampQR()

	examPath := filepath.Join(r.opts.OutputDir, fmt.Sprintf("prova_%s_%s.pdf", meta.ExamID, meta.Version))
	if err := pdf.OutputFileAndClose(examPath); err != nil {
		return "", "", fmt.Errorf("writing exam pdf: %w", err)
	}
	log.Info("exam written", "path", examPath)

	keyPath := ""
	if r.opts.Keys != nil {
		keyPath = filepath.Join(r.opts.OutputDir, fmt.Sprintf("gabarito_%s_%s.pdf", meta.ExamID, meta.Version))
		if err := r.opts.Keys.WriteKey(questions, meta, keyPath); err != nil {
			return "", "", fmt.Errorf("writing answer key: %w", err)
		}
		log.Info("answer key written", "path", keyPath)
	}
	return examPath, keyPath, nil
}

// SegmentFlags are the document-level numbering signals observed during
// segmentation, used to decide whether the renderer injects numbering.
type SegmentFlags struct {
	HasOwnNumbering  bool
	UsesQuestionWord bool
}

// pageState carries the drawing cursor and per-page bookkeeping.
type pageState struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	width  float64
	height float64
	y      float64

	meta ExamMeta
	qr   QREncoder
	log  *slog.Logger
}

// text draws one string with an explicit style, y being the baseline in
// top-down page coordinates.
func (p *pageState) text(x, y float64, s string, style textStyle) {
	style.apply(p.pdf)
	p.pdf.Text(x, y, p.tr(s))
}

// measure returns the rendered width of s under style.
func (p *pageState) measure(s string, style textStyle) float64 {
	style.apply(p.pdf)
	return p.pdf.GetStringWidth(p.tr(s))
}

// advance moves the cursor down, breaking the page when the cursor
// enters the footer safety band.
func (p *pageState) advance(step float64) {
	p.y += step
	if p.y > p.height-footerSafety {
		p.breakPage()
	}
}

func (p *pageState) breakPage() {
	p.stampQR()
	p.pdf.AddPage()
	p.y = pageMargin
}

// stampQR draws the page's QR artifact in the bottom-right corner. A
// failed encode is logged and skipped; identification is lost for that
// page but the exam still prints.
func (p *pageState) stampQR() {
	payload, err := json.Marshal(map[string]any{
		"exam":      p.meta.ExamID,
		"version":   p.meta.Version,
		"page":      p.pdf.PageNo(),
		"title":     p.meta.Title,
		"generated": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		p.log.Warn("qr payload marshal failed", "error", err)
		return
	}
	img, err := p.qr.Encode(string(payload), qrPixels)
	if err != nil {
		p.log.Warn("qr encode failed", "error", err)
		return
	}
	x := p.width - qrSizePt - qrMarginPt
	y := p.height - qrSizePt - qrMarginPt
	p.pdf.ImageOptions(img, x, y, qrSizePt, qrSizePt, false, fpdf.ImageOptions{}, 0, "")
}

func (p *pageState) rule(y float64) {
	p.pdf.SetDrawColor(0, 0, 0)
	p.pdf.Line(pageMargin, y, p.width-pageMargin, y)
}
