package docxdoc

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/rangel3l/sem-colar-system/model"
)

const imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

// fillHeader resolves the section's default header part, records its
// paragraphs as tagged header content and exports its embedded images.
func (r *reader) fillHeader(doc *model.SourceDocument, body *bodyXML) error {
	refID := headerRefID(body.SectPr)
	if refID == "" {
		return nil
	}

	var docRels relationshipsXML
	if err := r.parsePart("word/_rels/document.xml.rels", &docRels); err != nil {
		return fmt.Errorf("document relationships: %w", err)
	}
	target := relTarget(docRels, refID)
	if target == "" {
		return fmt.Errorf("unresolved header relationship %s", refID)
	}
	partName := "word/" + target

	var hdr headerXML
	if err := r.parsePart(partName, &hdr); err != nil {
		return fmt.Errorf("header part %s: %w", partName, err)
	}

	var paragraphs []model.HeaderParagraph
	for _, p := range hdr.Paragraphs {
		spans := paragraphSpans(&p)
		if len(spans) == 0 {
			continue
		}
		paragraphs = append(paragraphs, model.HeaderParagraph{
			Text: flattenSpans(spans),
			Runs: spans,
		})
	}

	if len(paragraphs) > 0 {
		doc.Header = model.HeaderContent{
			Kind:       model.HeaderDocxParagraphs,
			Paragraphs: paragraphs,
		}
	}

	if r.assetDir != "" {
		images, err := r.exportHeaderImages(partName)
		if err != nil {
			return err
		}
		doc.HeaderImages = images
		doc.AllImages = append(doc.AllImages, images...)
	}
	return nil
}

// headerRefID picks the default header reference, or the first one when
// no default is marked.
func headerRefID(sectPr sectPrXML) string {
	for _, ref := range sectPr.HeaderRefs {
		if ref.Type == "default" {
			return ref.ID
		}
	}
	if len(sectPr.HeaderRefs) > 0 {
		return sectPr.HeaderRefs[0].ID
	}
	return ""
}

func relTarget(rels relationshipsXML, id string) string {
	for _, rel := range rels.Relationships {
		if rel.ID == id {
			return rel.Target
		}
	}
	return ""
}

// exportHeaderImages copies the header part's image relationships into
// the asset directory under fresh names, with estimated placements since
// DOCX headers carry no page coordinates.
func (r *reader) exportHeaderImages(headerPart string) ([]model.ImagePlacement, error) {
	relsName := path.Join("word/_rels", path.Base(headerPart)+".rels")

	var rels relationshipsXML
	if err := r.parsePart(relsName, &rels); err != nil {
		// A header without relationships has no images.
		return nil, nil
	}

	var placements []model.ImagePlacement
	for _, rel := range rels.Relationships {
		if rel.Type != imageRelType {
			continue
		}
		source := path.Join("word", rel.Target)
		placement, err := r.exportImage(source)
		if err != nil {
			r.log.Warn("skipping header image", "part", source, "error", err)
			continue
		}
		placements = append(placements, placement)
	}
	return placements, nil
}

// exportBodyImages copies images embedded in body runs into the asset
// directory, with the same estimated placements as header images.
func (r *reader) exportBodyImages(doc *model.SourceDocument, body *bodyXML) error {
	ids := bodyImageRelIDs(body)
	if len(ids) == 0 {
		return nil
	}

	var rels relationshipsXML
	if err := r.parsePart("word/_rels/document.xml.rels", &rels); err != nil {
		return fmt.Errorf("document relationships: %w", err)
	}

	for _, id := range ids {
		target := relTarget(rels, id)
		if target == "" {
			r.log.Warn("unresolved image relationship", "id", id)
			continue
		}
		source := path.Join("word", target)
		placement, err := r.exportImage(source)
		if err != nil {
			r.log.Warn("skipping body image", "part", source, "error", err)
			continue
		}
		doc.AllImages = append(doc.AllImages, placement)
	}
	return nil
}

// bodyImageRelIDs collects blip relationship IDs from body runs in
// document order.
func bodyImageRelIDs(body *bodyXML) []string {
	var ids []string
	for _, el := range body.Elements {
		if el.Paragraph == nil {
			continue
		}
		runs := el.Paragraph.Runs
		for _, h := range el.Paragraph.Hyperlinks {
			runs = append(runs, h.Runs...)
		}
		for _, run := range runs {
			for _, d := range run.Drawings {
				for _, pic := range []*pictureXML{d.Inline, d.Anchor} {
					if pic != nil && pic.Blip != nil && pic.Blip.Embed != "" {
						ids = append(ids, pic.Blip.Embed)
					}
				}
			}
		}
	}
	return ids
}

func (r *reader) exportImage(partName string) (model.ImagePlacement, error) {
	data, err := r.partContent(partName)
	if err != nil {
		return model.ImagePlacement{}, err
	}

	ext := strings.ToLower(path.Ext(partName))
	if ext == "" {
		ext = ".png"
	}
	out := filepath.Join(r.assetDir, uuid.NewString()+ext)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return model.ImagePlacement{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.ImagePlacement{}, fmt.Errorf("decoding %s: %w", partName, err)
	}

	placement := model.ImagePlacement{Path: out, Width: cfg.Width, Height: cfg.Height}
	placement.EstimatePlacement()
	return placement, nil
}
