package model

import (
	"math"
	"testing"
)

func TestUnitRoundTrip(t *testing.T) {
	// The fixed factors are rounded independently, so their product is
	// not exactly 1; the round-trip error scales with the value.
	values := []float64{0, 1, 12.5, 210, 595.28, 841.89}
	for _, v := range values {
		got := MMToPt(PtToMM(v))
		tolerance := 1e-3
		if v != 0 {
			tolerance = 1e-3 * v
		}
		if math.Abs(got-v) > tolerance {
			t.Errorf("PtToMM/MMToPt round trip for %f: got %f", v, got)
		}
	}
}

func TestHeaderHeight(t *testing.T) {
	tests := []struct {
		pageHeight float64
		want       float64
	}{
		{841.89, 210.4725},
		{792, 198},
		{0, 0},
	}
	for _, tt := range tests {
		if got := HeaderHeight(tt.pageHeight); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HeaderHeight(%f) = %f, want %f", tt.pageHeight, got, tt.want)
		}
		// The ratio is a fixed design constant.
		if got := HeaderHeight(tt.pageHeight); got != tt.pageHeight*0.25 {
			t.Errorf("HeaderHeight(%f) != pageHeight*0.25", tt.pageHeight)
		}
	}
}

func TestColorFromRGB(t *testing.T) {
	tests := []struct {
		packed int
		want   Color
	}{
		{0x000000, Color{0, 0, 0}},
		{0xFFFFFF, Color{255, 255, 255}},
		{0xFF8001, Color{255, 128, 1}},
		{0x123456, Color{0x12, 0x34, 0x56}},
	}
	for _, tt := range tests {
		got := ColorFromRGB(tt.packed)
		if got != tt.want {
			t.Errorf("ColorFromRGB(%#x) = %+v, want %+v", tt.packed, got, tt.want)
		}
		if got.RGB() != tt.packed {
			t.Errorf("Color.RGB() round trip for %#x: got %#x", tt.packed, got.RGB())
		}
	}
}

func TestBBoxBasics(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)

	if b.Left() != 10 || b.Right() != 110 || b.Top() != 20 || b.Bottom() != 70 {
		t.Errorf("edge accessors wrong: %+v", b)
	}
	if c := b.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v", c)
	}
	if !b.Contains(Point{X: 60, Y: 45}) {
		t.Error("Contains should include center")
	}
	if b.Contains(Point{X: 0, Y: 0}) {
		t.Error("Contains should exclude outside point")
	}
}

func TestBBoxIntersectsAndUnion(t *testing.T) {
	a := NewBBox(0, 0, 50, 50)
	b := NewBBox(25, 25, 50, 50)
	c := NewBBox(200, 200, 10, 10)

	if !a.Intersects(b) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("distant boxes should not intersect")
	}

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 75 || u.Height != 75 {
		t.Errorf("Union = %+v", u)
	}
}

func TestTextBlockText(t *testing.T) {
	b := NewTextBlock(1, "first line\nsecond line")
	if got := b.Text(); got != "first line\nsecond line" {
		t.Errorf("Text() = %q", got)
	}
	if b.ID != 1 {
		t.Errorf("ID = %d", b.ID)
	}
}

func TestTextBlockFonts(t *testing.T) {
	b := &TextBlock{
		Lines: []TextLine{
			{Spans: []TextSpan{{Text: "a", Font: "Arial"}, {Text: "b", Font: "Courier"}}},
			{Spans: []TextSpan{{Text: "c", Font: "Arial"}}},
		},
	}
	fonts := b.Fonts()
	if len(fonts) != 2 || fonts[0] != "Arial" || fonts[1] != "Courier" {
		t.Errorf("Fonts() = %v", fonts)
	}
}

func TestImagePlacementInHeader(t *testing.T) {
	pageHeight := 800.0

	header := ImagePlacement{BBox: NewBBox(0, 10, 100, 50)}
	body := ImagePlacement{BBox: NewBBox(0, 400, 100, 50)}

	if !header.InHeader(pageHeight) {
		t.Error("image at y=10 should be in the header region")
	}
	if body.InHeader(pageHeight) {
		t.Error("image at y=400 should not be in the header region")
	}
}

func TestEstimatePlacement(t *testing.T) {
	ip := ImagePlacement{Width: 200, Height: 100}
	ip.EstimatePlacement()

	if math.Abs(ip.WidthMM-53) > 0.01 {
		t.Errorf("WidthMM = %f", ip.WidthMM)
	}
	if math.Abs(ip.XMM-(105-26.5)) > 0.01 {
		t.Errorf("XMM = %f, want centered on 210mm page", ip.XMM)
	}
	if ip.YMM != 20 {
		t.Errorf("YMM = %f, want fixed 20", ip.YMM)
	}
}

func TestSourceDocumentTableForBlock(t *testing.T) {
	doc := &SourceDocument{
		Blocks: []*TextBlock{NewTextBlock(0, "a"), NewTextBlock(1, "b")},
		Tables: []*Table{{BlockID: 1, Rows: [][]string{{"x", "y"}}}},
	}

	if doc.TableForBlock(1) == nil {
		t.Error("expected table for block 1")
	}
	if doc.TableForBlock(0) != nil {
		t.Error("expected no table for block 0")
	}
	if doc.BlockByID(1) == nil || doc.BlockByID(7) != nil {
		t.Error("BlockByID lookup wrong")
	}
}

func TestQuestionClone(t *testing.T) {
	q := NewQuestion("1. What?")
	q.Alternatives = []string{"(A) x", "(B) y"}

	c := q.Clone()
	c.Alternatives[0] = "(A) changed"

	if q.Alternatives[0] != "(A) x" {
		t.Error("Clone should not share the alternatives slice")
	}
}
