package model

// ImagePlacement describes one extracted raster image and where it sat on
// the source page. Path points at the session temp file holding the pixel
// data.
type ImagePlacement struct {
	Path   string
	Width  int // Pixel dimensions
	Height int
	BBox   BBox // Page coordinates (points), when known

	// Derived millimeter geometry used by the renderer. For formats
	// without positional metadata (DOCX headers) these are estimated:
	// centered horizontally with a fixed top offset.
	XMM      float64
	YMM      float64
	WidthMM  float64
	HeightMM float64
}

// InHeader reports whether the placement lies within the header region of
// a page with the given height (same unit as the bounding box).
func (ip ImagePlacement) InHeader(pageHeight float64) bool {
	return ip.BBox.Top() < HeaderHeight(pageHeight)
}

// EstimatePlacement fills the millimeter geometry for an image without
// positional metadata: scaled from pixels, centered on an A4 page, fixed
// 20mm top offset.
func (ip *ImagePlacement) EstimatePlacement() {
	ip.WidthMM = PxToMM(float64(ip.Width))
	ip.HeightMM = PxToMM(float64(ip.Height))
	ip.XMM = A4WidthMM/2 - ip.WidthMM/2
	ip.YMM = 20
}
