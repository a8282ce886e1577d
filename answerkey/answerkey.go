// Package answerkey writes the answer key artifact for a generated exam
// variant: one line per question with the letter of its correct
// alternative, or a blank slot for manual grading when none is marked.
package answerkey

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/render"
)

const (
	margin   = 50
	lineStep = 18
)

// Writer renders answer keys as single-column A4 PDFs.
type Writer struct{}

// NewWriter creates a key writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteKey writes the key for the given variant to outPath.
func (w *Writer) WriteKey(questions []model.Question, meta render.ExamMeta, outPath string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Gabarito", true)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(margin, margin, tr("GABARITO"))

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(margin, margin+20, tr(fmt.Sprintf("Prova %s - versão %s", meta.ExamID, meta.Version)))

	y := margin + 50.0
	pdf.SetFont("Helvetica", "", 11)
	for i, q := range questions {
		pdf.Text(margin, y, tr(fmt.Sprintf("%2d) %s", i+1, answerLetter(q))))
		y += lineStep
		if y > 842-margin {
			pdf.AddPage()
			y = margin
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("writing answer key: %w", err)
	}
	return nil
}

// answerLetter maps the correct-alternative index to its letter, or a
// fill-in blank when the question carries no answer identity.
func answerLetter(q model.Question) string {
	if q.Correct < 0 || q.Correct >= len(q.Alternatives) {
		return "____"
	}
	return string(rune('A' + q.Correct))
}
