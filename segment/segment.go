package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rangel3l/sem-colar-system/markup"
	"github.com/rangel3l/sem-colar-system/model"
)

// Result is the outcome of segmenting one document.
type Result struct {
	Questions []model.Question

	// HasOwnNumbering reports that the document's first question carried
	// a "<n>." or "<n>)" marker, so the renderer must not inject its own
	// numbering.
	HasOwnNumbering bool

	// UsesQuestionWord reports that the first question used the literal
	// "Questão <n>" form.
	UsesQuestionWord bool
}

// Engine segments a document's blocks into questions.
type Engine struct{}

// NewEngine creates a segmentation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Segment walks the document's blocks in order and groups them into
// questions. Block order is never altered; free-standing prose between
// questions is ignored. Table blocks append inline markup to the open
// statement, preferring the document's structured record for the block.
func (e *Engine) Segment(doc *model.SourceDocument) Result {
	var result Result

	open := false
	var current model.Question
	sawFirst := false

	flush := func() {
		// A question only counts once it has collected at least one
		// alternative; statement-only questions are dropped.
		if open && len(current.Alternatives) > 0 {
			result.Questions = append(result.Questions, current)
		}
	}

	for _, block := range doc.Blocks {
		// PDF extraction can yield decomposed accents; normalize so
		// "Questão" matches either way.
		text := strings.TrimSpace(norm.NFC.String(block.Text()))
		if text == "" {
			continue
		}

		switch {
		case isQuestionStart(text):
			flush()
			current = model.NewQuestion(text)
			current.BlockID = block.ID
			open = true

			if !sawFirst {
				sawFirst = true
				result.HasOwnNumbering = hasNumberMarker(text)
				result.UsesQuestionWord = hasQuestionWord(text)
			}

		case alternativeMarker(text) != "":
			if !open {
				continue // Alternative with no open question is discarded.
			}
			marker := alternativeMarker(text)
			current.Alternatives = append(current.Alternatives, normalizeAlternative(text, marker))

		case block.IsTable:
			if !open {
				continue
			}
			current.Statement += "\n" + e.tableFragment(doc, block)
		}
	}

	flush()
	return result
}

// tableFragment renders the block's table as inline markup, using the
// structured record relinked by block ID when one exists, or a fresh
// best-effort decomposition otherwise.
func (e *Engine) tableFragment(doc *model.SourceDocument, block *model.TextBlock) string {
	table := doc.TableForBlock(block.ID)
	if table == nil {
		table = &model.Table{BlockID: block.ID}
		for _, line := range strings.Split(block.Text(), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			table.Rows = append(table.Rows, []string{line})
		}
	}
	return markup.BuildTable(table)
}

// SegmentBlocks is a convenience for segmenting bare blocks without a
// surrounding document (tables fall back to single-cell rows).
func (e *Engine) SegmentBlocks(blocks []*model.TextBlock) Result {
	return e.Segment(&model.SourceDocument{Blocks: blocks})
}
