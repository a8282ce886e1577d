package render

import (
	"log/slog"

	"github.com/rangel3l/sem-colar-system/model"
)

// QREncoder produces a QR image file from a payload string.
type QREncoder interface {
	Encode(payload string, sizePx int) (string, error)
}

// KeyWriter produces the answer key artifact for a rendered variant.
type KeyWriter interface {
	WriteKey(questions []model.Question, meta ExamMeta, outPath string) error
}

// ExamMeta identifies one generated variant.
type ExamMeta struct {
	ExamID  string
	Version string
	Title   string
}

// Layout constants, in points except where noted.
const (
	pageMargin     = 50
	lineStep       = 15
	questionGap    = 20
	footerSafety   = 100 // Cursor past pageHeight-footerSafety forces a page break
	altIndent      = 20
	altWrapIndent  = 30
	tableRowHeight = 20
	qrSizePt       = 50
	qrMarginPt     = 20
	qrPixels       = 256
)

// Options configures a Renderer.
type Options struct {
	// OutputDir receives generated artifacts. Required.
	OutputDir string

	// QR stamps per-page codes. Required.
	QR QREncoder

	// Keys writes the answer key next to the exam. Optional; without it
	// Render returns an empty key path.
	Keys KeyWriter

	// DefaultTitle is the headline of the fallback header.
	DefaultTitle string

	// Logger for diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.DefaultTitle == "" {
		out.DefaultTitle = "AVALIAÇÃO DE CONHECIMENTOS"
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
