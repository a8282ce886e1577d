package docxdoc

import (
	"encoding/xml"
	"io"
	"strings"
)

// documentXML is the root of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the body's paragraphs and tables in document order.
// Struct-tag decoding would split them into two slices, so the elements
// are collected manually.
type bodyXML struct {
	Elements []bodyElement
	SectPr   sectPrXML
}

// bodyElement is one body child: exactly one of the fields is set.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML walks the body children token by token so paragraph and
// table order survives.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			case "sectPr":
				if err := d.DecodeElement(&b.SectPr, &t); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphXML is a <w:p> element.
type paragraphXML struct {
	Runs       []runXML       `xml:"r"`
	Hyperlinks []hyperlinkXML `xml:"hyperlink"`
}

// hyperlinkXML wraps runs inside a <w:hyperlink>.
type hyperlinkXML struct {
	Runs []runXML `xml:"r"`
}

// runXML is a <w:r> element. Text, tabs and soft breaks collapse into
// one string so their order within the run survives.
type runXML struct {
	Properties runPropsXML
	Text       string
	Drawings   []drawingXML
}

// UnmarshalXML walks the run children token by token, interleaving text,
// tab and break content in document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var txt textXML
				if err := d.DecodeElement(&txt, &t); err != nil {
					return err
				}
				sb.WriteString(txt.Value)
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				sb.WriteString("\t")
			case "br":
				var br breakXML
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				// Page and column breaks carry no text content.
				if br.Type == "" || br.Type == "textWrapping" {
					sb.WriteString("\n")
				}
			case "drawing":
				var dr drawingXML
				if err := d.DecodeElement(&dr, &t); err != nil {
					return err
				}
				r.Drawings = append(r.Drawings, dr)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				r.Text = sb.String()
				return nil
			}
		}
	}
	r.Text = sb.String()
	return nil
}

// runPropsXML is a <w:rPr> element.
type runPropsXML struct {
	Bold      *boolXML `xml:"b"`
	Italic    *boolXML `xml:"i"`
	Underline *boolXML `xml:"u"`
	FontSize  sizeXML  `xml:"sz"`
	Fonts     fontXML  `xml:"rFonts"`
	Color     colorXML `xml:"color"`
}

// boolXML is a toggle property: present without val means on.
type boolXML struct {
	Val string `xml:"val,attr"`
}

// Enabled reports the toggle state.
func (b *boolXML) Enabled() bool {
	if b == nil {
		return false
	}
	return b.Val != "0" && b.Val != "false" && b.Val != "none"
}

// sizeXML is a font size in half-points.
type sizeXML struct {
	Val string `xml:"val,attr"`
}

type fontXML struct {
	ASCII string `xml:"ascii,attr"`
}

type colorXML struct {
	Val string `xml:"val,attr"` // Hex color or "auto"
}

type textXML struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"type,attr"`
}

// drawingXML carries an embedded image reference.
type drawingXML struct {
	Inline *pictureXML `xml:"inline"`
	Anchor *pictureXML `xml:"anchor"`
}

type pictureXML struct {
	Blip *blipXML `xml:"graphic>graphicData>pic>blipFill>blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"` // Relationship ID
}

// tableXML is a <w:tbl> element.
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// sectPrXML carries the section's header references.
type sectPrXML struct {
	HeaderRefs []headerRefXML `xml:"headerReference"`
}

type headerRefXML struct {
	Type string `xml:"type,attr"` // default, first, even
	ID   string `xml:"id,attr"`
}

// headerXML is the root of a word/headerN.xml part.
type headerXML struct {
	XMLName    xml.Name       `xml:"hdr"`
	Paragraphs []paragraphXML `xml:"p"`
	Tables     []tableXML     `xml:"tbl"`
}

// relationshipsXML is the root of a .rels part.
type relationshipsXML struct {
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}
