package docxdoc

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rangel3l/sem-colar-system/model"
)

// buildDocx writes a minimal DOCX archive to disk from part contents.
func buildDocx(t *testing.T, parts map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, ok := parts["[Content_Types].xml"]; !ok {
		parts["[Content_Types].xml"] = []byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)
	}
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "exam.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const docWithBody = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:rPr><w:b/></w:rPr><w:t>1. Qual a capital do Brasil?</w:t></w:r></w:p>
    <w:p><w:r><w:t>(A) Rio de Janeiro</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Nome</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Idade</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Ana</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>20</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>(B) Brasília</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractBodyOrder(t *testing.T) {
	path := buildDocx(t, map[string][]byte{
		"word/document.xml": []byte(docWithBody),
	})

	doc, err := Extract(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(doc.Blocks))
	}
	if got := doc.Blocks[0].Text(); got != "1. Qual a capital do Brasil?" {
		t.Errorf("first block = %q", got)
	}
	if !doc.Blocks[2].IsTable {
		t.Error("third block should be table-flagged")
	}
	if got := doc.Blocks[3].Text(); got != "(B) Brasília" {
		t.Errorf("fourth block = %q", got)
	}

	table := doc.TableForBlock(doc.Blocks[2].ID)
	if table == nil {
		t.Fatal("missing table record for table block")
	}
	if table.RowCount() != 2 || table.ColCount() != 2 {
		t.Errorf("table shape = %dx%d", table.RowCount(), table.ColCount())
	}
	if table.Rows[0][0] != "Nome" || table.Rows[1][1] != "20" {
		t.Errorf("table rows = %v", table.Rows)
	}

	texts := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		texts[i] = b.Text()
	}
	if doc.FullText != strings.Join(texts, "\n\n") {
		t.Error("full text does not match block texts in order")
	}
}

func TestExtractRunStyles(t *testing.T) {
	path := buildDocx(t, map[string][]byte{
		"word/document.xml": []byte(docWithBody),
	})

	doc, err := Extract(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}

	span := doc.Blocks[0].FirstSpan()
	if span == nil {
		t.Fatal("no span on first block")
	}
	if !span.Style.Bold {
		t.Error("expected bold statement run")
	}
	if body := doc.Blocks[1].FirstSpan(); body.Style.Bold {
		t.Error("alternative run should not be bold")
	}
}

func TestExtractHeader(t *testing.T) {
	parts := map[string][]byte{
		"word/document.xml": []byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:r><w:t>1. Pergunta?</w:t></w:r></w:p>
    <w:p><w:r><w:t>(A) sim</w:t></w:r></w:p>
    <w:sectPr><w:headerReference w:type="default" r:id="rId7"/></w:sectPr>
  </w:body>
</w:document>`),
		"word/_rels/document.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>
</Relationships>`),
		"word/header1.xml": []byte(`<?xml version="1.0"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:p><w:r><w:rPr><w:b/></w:rPr><w:t>ESCOLA MUNICIPAL DOM PEDRO</w:t></w:r></w:p>
  <w:p><w:r><w:t>Disciplina: História</w:t></w:r></w:p>
</w:hdr>`),
		"word/_rels/header1.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`),
		"word/media/image1.png": pngBytes(t, 80, 40),
	}
	path := buildDocx(t, parts)

	assetDir := t.TempDir()
	doc, err := Extract(context.Background(), path, Options{AssetDir: assetDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if doc.Header.Kind != model.HeaderDocxParagraphs {
		t.Fatalf("header kind = %v", doc.Header.Kind)
	}
	if len(doc.Header.Paragraphs) != 2 {
		t.Fatalf("expected 2 header paragraphs, got %d", len(doc.Header.Paragraphs))
	}
	first := doc.Header.Paragraphs[0]
	if first.Text != "ESCOLA MUNICIPAL DOM PEDRO" {
		t.Errorf("first paragraph = %q", first.Text)
	}
	if len(first.Runs) != 1 || !first.Runs[0].Style.Bold {
		t.Errorf("first paragraph runs = %+v", first.Runs)
	}

	if !doc.PreserveHeader {
		t.Error("expected PreserveHeader")
	}
	if len(doc.HeaderImages) != 1 {
		t.Fatalf("expected 1 header image, got %d", len(doc.HeaderImages))
	}
	img := doc.HeaderImages[0]
	if img.Width != 80 || img.Height != 40 {
		t.Errorf("image size = %dx%d", img.Width, img.Height)
	}
	if filepath.Dir(img.Path) != assetDir {
		t.Errorf("image exported outside asset dir: %s", img.Path)
	}
	if _, err := os.Stat(img.Path); err != nil {
		t.Errorf("exported image missing: %v", err)
	}
}

func TestExtractSoftBreakKeepsRunOrder(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Linha um</w:t><w:br/><w:t>Linha dois</w:t></w:r></w:p>
    <w:p><w:r><w:t>Antes</w:t><w:tab/><w:t>depois</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := buildDocx(t, map[string][]byte{
		"word/document.xml": []byte(doc),
	})

	out, err := Extract(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(out.Blocks))
	}
	if got := out.Blocks[0].Text(); got != "Linha um\nLinha dois" {
		t.Errorf("soft break block = %q", got)
	}
	if got := out.Blocks[1].Text(); got != "Antes\tdepois" {
		t.Errorf("tab block = %q", got)
	}
}

func TestExtractBodyImages(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>1. Observe a figura:</w:t></w:r></w:p>
    <w:p><w:r><w:drawing><inline><graphic><graphicData><pic><blipFill><blip embed="rId5"/></blipFill></pic></graphicData></graphic></inline></w:drawing></w:r></w:p>
    <w:p><w:r><w:t>(A) alternativa</w:t></w:r></w:p>
  </w:body>
</w:document>`
	parts := map[string][]byte{
		"word/document.xml": []byte(doc),
		"word/_rels/document.xml.rels": []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image2.png"/>
</Relationships>`),
		"word/media/image2.png": pngBytes(t, 120, 90),
	}
	path := buildDocx(t, parts)

	assetDir := t.TempDir()
	out, err := Extract(context.Background(), path, Options{AssetDir: assetDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(out.AllImages) != 1 {
		t.Fatalf("expected 1 body image, got %d", len(out.AllImages))
	}
	img := out.AllImages[0]
	if img.Width != 120 || img.Height != 90 {
		t.Errorf("image size = %dx%d", img.Width, img.Height)
	}
	if filepath.Dir(img.Path) != assetDir {
		t.Errorf("image exported outside asset dir: %s", img.Path)
	}
	if _, err := os.Stat(img.Path); err != nil {
		t.Errorf("exported image missing: %v", err)
	}
	if len(out.HeaderImages) != 0 {
		t.Error("body images should not be treated as header images")
	}
}

func TestExtractNoHeader(t *testing.T) {
	path := buildDocx(t, map[string][]byte{
		"word/document.xml": []byte(docWithBody),
	})

	doc, err := Extract(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Header.Kind != model.HeaderNone {
		t.Errorf("header kind = %v, want HeaderNone", doc.Header.Kind)
	}
	if doc.PreserveHeader {
		t.Error("did not expect PreserveHeader")
	}
}

func TestExtractMissingDocumentPart(t *testing.T) {
	path := buildDocx(t, map[string][]byte{
		"word/styles.xml": []byte("<w:styles/>"),
	})

	if _, err := Extract(context.Background(), path, Options{}); err == nil {
		t.Error("expected error for archive without document.xml")
	}
}
