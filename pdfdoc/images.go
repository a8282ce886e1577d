package pdfdoc

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"

	"github.com/rangel3l/sem-colar-system/model"
)

// rasterDPI is the density of the composited header raster.
const rasterDPI = 300.0

// extractImages exports the document's embedded images into assetDir and
// records their placements. The content streams expose no image
// positions, so first-page images are treated as header candidates and
// placed by estimate.
func extractImages(doc *model.SourceDocument, path, assetDir string, conf *pdfcpumodel.Configuration, log *slog.Logger) error {
	all, err := exportPageImages(path, assetDir, nil, conf)
	if err != nil {
		return err
	}
	doc.AllImages = all

	header, err := exportPageImages(path, assetDir, []string{"1"}, conf)
	if err != nil {
		log.Warn("first-page image extraction failed", "error", err)
		return nil
	}
	doc.HeaderImages = header
	return nil
}

// exportPageImages runs the image export for the selected pages (nil for
// all) and renames the results to collision-free session names.
func exportPageImages(path, assetDir string, pages []string, conf *pdfcpumodel.Configuration) ([]model.ImagePlacement, error) {
	stage, err := os.MkdirTemp(assetDir, "img-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	if err := api.ExtractImagesFile(path, stage, pages, conf); err != nil {
		return nil, fmt.Errorf("exporting images: %w", err)
	}

	entries, err := os.ReadDir(stage)
	if err != nil {
		return nil, err
	}

	var placements []model.ImagePlacement
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(stage, entry.Name())
		dst := filepath.Join(assetDir, uuid.NewString()+filepath.Ext(entry.Name()))
		if err := os.Rename(src, dst); err != nil {
			return nil, err
		}
		placement, err := placementFor(dst)
		if err != nil {
			// Exotic encodings (CCITT, JBIG2) stay on disk but are not
			// placeable.
			continue
		}
		placements = append(placements, placement)
	}
	return placements, nil
}

func placementFor(path string) (model.ImagePlacement, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ImagePlacement{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return model.ImagePlacement{}, err
	}

	p := model.ImagePlacement{Path: path, Width: cfg.Width, Height: cfg.Height}
	p.EstimatePlacement()
	return p, nil
}

// renderHeaderRaster composites the header-region images onto a white
// canvas the size of the page-1 header band, for preview and as the
// fallback when positioned redraw fails.
func renderHeaderRaster(doc *model.SourceDocument, assetDir string) (string, error) {
	if len(doc.HeaderImages) == 0 {
		return "", nil
	}

	pxPerPt := rasterDPI / 72.0
	width := int(doc.PageWidth * pxPerPt)
	height := int(model.HeaderHeight(doc.PageHeight) * pxPerPt)
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("degenerate page dimensions %gx%g", doc.PageWidth, doc.PageHeight)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, placement := range doc.HeaderImages {
		if err := compositeImage(canvas, placement, pxPerPt); err != nil {
			return "", err
		}
	}

	out := filepath.Join(assetDir, uuid.NewString()+".png")
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return "", err
	}
	return out, nil
}

func compositeImage(canvas *image.RGBA, placement model.ImagePlacement, pxPerPt float64) error {
	f, err := os.Open(placement.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	x0 := int(model.MMToPt(placement.XMM) * pxPerPt)
	y0 := int(model.MMToPt(placement.YMM) * pxPerPt)
	x1 := x0 + int(model.MMToPt(placement.WidthMM)*pxPerPt)
	y1 := y0 + int(model.MMToPt(placement.HeightMM)*pxPerPt)

	dst := image.Rect(x0, y0, x1, y1).Intersect(canvas.Bounds())
	if dst.Empty() {
		return nil
	}
	draw.CatmullRom.Scale(canvas, dst, img, img.Bounds(), draw.Over, nil)
	return nil
}
