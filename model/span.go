package model

// TextStyle represents text styling flags. The flags are independent, not
// mutually exclusive.
type TextStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// TextSpan is the smallest styled text unit within a block: one run of
// text sharing a single font, size, style and color. Spans are immutable
// once extracted.
type TextSpan struct {
	Text     string
	Font     string
	Size     float64 // Point size
	Style    TextStyle
	Color    Color
	Origin   Point // Baseline origin in page coordinates
	BBox     BBox
}

// TextLine is an ordered sequence of spans forming one visual line.
type TextLine struct {
	Spans []TextSpan
}

// Text returns the concatenated span text for the line.
func (l TextLine) Text() string {
	var s string
	for _, span := range l.Spans {
		s += span.Text
	}
	return s
}
