package pdfdoc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rangel3l/sem-colar-system/model"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(dir, "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlacementFor(t *testing.T) {
	path := writePNG(t, t.TempDir(), 120, 60)

	p, err := placementFor(path)
	if err != nil {
		t.Fatalf("placementFor: %v", err)
	}
	if p.Width != 120 || p.Height != 60 {
		t.Errorf("pixel size = %dx%d", p.Width, p.Height)
	}
	if p.WidthMM <= 0 || p.HeightMM <= 0 {
		t.Errorf("mm size = %gx%g", p.WidthMM, p.HeightMM)
	}
	if p.YMM != 20 {
		t.Errorf("estimated top offset = %g, want 20", p.YMM)
	}
}

func TestRenderHeaderRaster(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir, 100, 50)

	placement, err := placementFor(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	doc := &model.SourceDocument{
		PageWidth:    595,
		PageHeight:   842,
		HeaderImages: []model.ImagePlacement{placement},
	}

	out, err := renderHeaderRaster(doc, dir)
	if err != nil {
		t.Fatalf("renderHeaderRaster: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding raster: %v", err)
	}

	pxPerPt := float64(rasterDPI) / 72.0
	wantWidth := int(595 * pxPerPt)
	wantHeight := int(model.HeaderHeight(842) * pxPerPt)
	if cfg.Width != wantWidth || cfg.Height != wantHeight {
		t.Errorf("raster = %dx%d, want %dx%d", cfg.Width, cfg.Height, wantWidth, wantHeight)
	}
}

func TestRenderHeaderRasterNoImages(t *testing.T) {
	doc := &model.SourceDocument{PageWidth: 595, PageHeight: 842}
	out, err := renderHeaderRaster(doc, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected empty raster path, got %s", out)
	}
}
