package model

import "strings"

// TextBlock is a contiguous extracted unit of text: an ordered sequence of
// lines, each an ordered sequence of spans. Blocks are produced in reading
// order (top-to-bottom per page, pages in document order) and that order
// is the only signal used for question/alternative adjacency.
type TextBlock struct {
	// ID is assigned at extraction time and is unique within a document.
	// Table records reference blocks by this ID.
	ID int

	Lines []TextLine
	BBox  BBox
	Page  int // 1-indexed source page

	// IsTable is assigned by the table detection heuristic.
	IsTable bool
}

// Text returns the newline-joined plain-text rendering of the block.
func (b *TextBlock) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		parts = append(parts, line.Text())
	}
	return strings.Join(parts, "\n")
}

// FirstSpan returns the first span of the block, or nil if the block has
// no spans. Used by the renderer to pick a representative font.
func (b *TextBlock) FirstSpan() *TextSpan {
	for _, line := range b.Lines {
		if len(line.Spans) > 0 {
			return &line.Spans[0]
		}
	}
	return nil
}

// Fonts returns the distinct font names used by the block's spans.
func (b *TextBlock) Fonts() []string {
	seen := make(map[string]bool)
	var fonts []string
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if span.Font != "" && !seen[span.Font] {
				seen[span.Font] = true
				fonts = append(fonts, span.Font)
			}
		}
	}
	return fonts
}

// NewTextBlock builds a block from plain text, one line per newline, with
// a single unstyled span per line. Useful for DOCX content and tests.
func NewTextBlock(id int, text string) *TextBlock {
	b := &TextBlock{ID: id}
	for _, line := range strings.Split(text, "\n") {
		b.Lines = append(b.Lines, TextLine{Spans: []TextSpan{{Text: line}}})
	}
	return b
}
