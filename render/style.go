package render

import (
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rangel3l/sem-colar-system/model"
)

// textStyle is an explicit style descriptor applied before each draw, so
// no draw depends on state left behind by an earlier one.
type textStyle struct {
	Family string
	Bold   bool
	Italic bool
	Size   float64
	Color  model.Color
}

func (s textStyle) apply(pdf *fpdf.Fpdf) {
	var flags string
	if s.Bold {
		flags += "B"
	}
	if s.Italic {
		flags += "I"
	}
	size := s.Size
	if size <= 0 {
		size = 10
	}
	pdf.SetFont(s.Family, flags, size)
	pdf.SetTextColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
}

// bodyStyle is the default for question and alternative text.
func bodyStyle() textStyle {
	return textStyle{Family: "Helvetica", Size: 10, Color: model.Black}
}

// styleForSpan maps a source span onto the closest core PDF family.
func styleForSpan(span model.TextSpan) textStyle {
	return textStyle{
		Family: coreFamily(span.Font),
		Bold:   span.Style.Bold,
		Italic: span.Style.Italic,
		Size:   span.Size,
		Color:  span.Color,
	}
}

// coreFamily reduces an arbitrary source font name to one of the three
// built-in families every PDF viewer renders.
func coreFamily(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "times") || strings.Contains(lower, "serif") && !strings.Contains(lower, "sans"):
		return "Times"
	case strings.Contains(lower, "courier") || strings.Contains(lower, "mono"):
		return "Courier"
	default:
		return "Helvetica"
	}
}
