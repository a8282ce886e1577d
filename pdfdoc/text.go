package pdfdoc

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rangel3l/sem-colar-system/model"
)

// Geometry tolerances, in fractions of the font size.
const (
	baselineTolerance = 0.4 // Same-line grouping
	wordGapRatio      = 0.3 // Space insertion between glyph runs
	blockGapRatio     = 1.6 // Line gap that starts a new block
)

// assembleBlocks reconstructs blocks from a page's raw positioned glyph
// runs. Coordinates flip from the PDF's bottom-up space to top-down page
// coordinates so the header cutoff and reading order are simple
// comparisons.
func assembleBlocks(texts []pdf.Text, pageNum int, pageHeight float64) []*model.TextBlock {
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		glyphs = append(glyphs, glyph{
			text: t.S,
			font: t.Font,
			size: size,
			x:    t.X,
			y:    pageHeight - t.Y, // Baseline, top-down
			w:    t.W,
		})
	}
	if len(glyphs) == 0 {
		return nil
	}

	lines := groupLines(glyphs)
	return groupBlocks(lines, pageNum)
}

type glyph struct {
	text string
	font string
	size float64
	x, y float64
	w    float64
}

// groupLines buckets glyphs by baseline and merges each bucket into
// styled spans, left to right.
func groupLines(glyphs []glyph) []model.TextLine {
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].y != glyphs[j].y {
			return glyphs[i].y < glyphs[j].y
		}
		return glyphs[i].x < glyphs[j].x
	})

	var lines []model.TextLine
	var bucket []glyph
	flush := func() {
		if len(bucket) > 0 {
			lines = append(lines, mergeLine(bucket))
			bucket = nil
		}
	}

	for _, g := range glyphs {
		if len(bucket) > 0 {
			prev := bucket[len(bucket)-1]
			if g.y-prev.y > baselineTolerance*prev.size {
				flush()
			}
		}
		bucket = append(bucket, g)
	}
	flush()
	return lines
}

// mergeLine joins one baseline's glyphs into spans, starting a new span
// on every font or size change and inserting a space across word gaps.
func mergeLine(bucket []glyph) model.TextLine {
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].x < bucket[j].x
	})

	var line model.TextLine
	var sb strings.Builder
	var cur glyph
	spanStartX := 0.0
	rightEdge := 0.0

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		line.Spans = append(line.Spans, model.TextSpan{
			Text:   sb.String(),
			Font:   cur.font,
			Size:   cur.size,
			Style:  styleFromFont(cur.font),
			Color:  model.Black,
			Origin: model.Point{X: spanStartX, Y: cur.y},
			BBox: model.BBox{
				X:      spanStartX,
				Y:      cur.y - cur.size,
				Width:  rightEdge - spanStartX,
				Height: cur.size,
			},
		})
		sb.Reset()
	}

	for i, g := range bucket {
		if i == 0 || g.font != cur.font || g.size != cur.size {
			flush()
			cur = g
			spanStartX = g.x
		} else if g.x-rightEdge > wordGapRatio*cur.size {
			sb.WriteString(" ")
		}
		sb.WriteString(g.text)
		rightEdge = g.x + g.w
		if rightEdge < g.x {
			rightEdge = g.x
		}
	}
	flush()
	return line
}

// groupBlocks splits the ordered lines into blocks wherever the vertical
// gap exceeds the block threshold.
func groupBlocks(lines []model.TextLine, pageNum int) []*model.TextBlock {
	var blocks []*model.TextBlock
	var current *model.TextBlock
	prevBaseline := 0.0

	for _, line := range lines {
		if len(line.Spans) == 0 || strings.TrimSpace(line.Text()) == "" {
			continue
		}
		baseline := line.Spans[0].Origin.Y
		size := line.Spans[0].Size

		if current == nil || baseline-prevBaseline > blockGapRatio*size {
			current = &model.TextBlock{Page: pageNum}
			blocks = append(blocks, current)
		}
		current.Lines = append(current.Lines, line)
		current.BBox = extendBBox(current.BBox, line)
		prevBaseline = baseline
	}
	return blocks
}

func extendBBox(box model.BBox, line model.TextLine) model.BBox {
	for _, span := range line.Spans {
		if box.IsEmpty() {
			box = span.BBox
		} else {
			box = box.Union(span.BBox)
		}
	}
	return box
}

// styleFromFont infers styling from the PostScript font name, the only
// style signal the content stream carries.
func styleFromFont(name string) model.TextStyle {
	lower := strings.ToLower(name)
	return model.TextStyle{
		Bold:   strings.Contains(lower, "bold") || strings.Contains(lower, "black"),
		Italic: strings.Contains(lower, "italic") || strings.Contains(lower, "oblique"),
	}
}
