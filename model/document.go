package model

// HeaderKind tags the shape of preserved header content. It is decided
// once at extraction time; the renderer switches on the tag rather than
// probing field presence.
type HeaderKind int

const (
	// HeaderNone means no preserved header content is available.
	HeaderNone HeaderKind = iota
	// HeaderPositionedRuns is PDF text with literal page positions.
	HeaderPositionedRuns
	// HeaderPDFBlocks is PDF block/line/span structure without
	// pre-flattened run positions.
	HeaderPDFBlocks
	// HeaderDocxParagraphs is DOCX paragraph/run content with no
	// positional metadata.
	HeaderDocxParagraphs
)

func (k HeaderKind) String() string {
	switch k {
	case HeaderPositionedRuns:
		return "PositionedRuns"
	case HeaderPDFBlocks:
		return "PDFBlocks"
	case HeaderDocxParagraphs:
		return "DocxParagraphs"
	default:
		return "None"
	}
}

// PositionedRun is one header text run with its literal position on the
// source page (source coordinates, Y grows downward).
type PositionedRun struct {
	Text  string
	Font  string
	Size  float64
	Style TextStyle
	Color Color
	X     float64
	Y     float64
}

// HeaderParagraph is one DOCX header paragraph: its plain text plus the
// styled runs composing it.
type HeaderParagraph struct {
	Text string
	Runs []TextSpan
}

// HeaderContent is the tagged variant carrying whichever header shape the
// source format produced. Exactly the fields matching Kind are populated.
type HeaderContent struct {
	Kind       HeaderKind
	Runs       []PositionedRun   // HeaderPositionedRuns
	Blocks     []*TextBlock      // HeaderPDFBlocks
	Paragraphs []HeaderParagraph // HeaderDocxParagraphs
}

// Overrides carries user-supplied header fields applied before rendering.
// Zero-value fields leave the extracted content untouched.
type Overrides struct {
	Teacher        string
	Subject        string
	ClassLabel     string
	EvaluationType string
	HeaderImage    string // Path to a replacement header image
}

// SourceDocument is the extraction output for one loaded exam document.
// It is created once per load and read-only afterwards, except for
// enrichment with user overrides prior to rendering.
type SourceDocument struct {
	// Path of the source file.
	Path string

	// FullText is the double-newline join of all block texts, in order.
	FullText string

	// Blocks in reading order. Block order is preserved end-to-end.
	Blocks []*TextBlock

	// Tables holds the decomposed records for table-classified blocks,
	// keyed into Blocks via Table.BlockID.
	Tables []*Table

	// HeaderImages are placements whose bounding box falls inside the
	// header region (or, for DOCX, images embedded in the header part).
	HeaderImages []ImagePlacement

	// AllImages includes header and body images.
	AllImages []ImagePlacement

	// HeaderRaster is the path of the page-1 header region rendered to a
	// standalone PNG, when the PDF path produced one. Display-only.
	HeaderRaster string

	// PreserveHeader indicates the original header should be re-drawn on
	// generated documents.
	PreserveHeader bool

	// Header is the original header content, tagged by source shape.
	Header HeaderContent

	// PageWidth and PageHeight are the first page's dimensions in points.
	PageWidth  float64
	PageHeight float64

	// Overrides supplied by the user, applied at render time.
	Overrides Overrides
}

// TableForBlock returns the decomposed table owned by the given block, or
// nil if the block has no table record.
func (d *SourceDocument) TableForBlock(id int) *Table {
	for _, t := range d.Tables {
		if t.BlockID == id {
			return t
		}
	}
	return nil
}

// BlockByID returns the block with the given extraction-assigned ID.
func (d *SourceDocument) BlockByID(id int) *TextBlock {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}
