package model

// Fixed conversion factors used uniformly across the system. No alternate
// DPI assumptions are made anywhere else.
const (
	// PointsPerMM converts millimeters to PDF points (1mm = 2.83465pt).
	PointsPerMM = 2.83465

	// MMPerPoint converts PDF points to millimeters (1pt = 0.352778mm).
	MMPerPoint = 0.352778

	// MMPerPixel is the approximate millimeter size of one pixel at the
	// 96 DPI assumption used for embedded raster images.
	MMPerPixel = 0.265

	// HeaderHeightRatio is the fraction of the first page's height that
	// forms the header region.
	HeaderHeightRatio = 0.25

	// A4WidthMM is the width of an A4 page in millimeters.
	A4WidthMM = 210.0

	// A4HeightMM is the height of an A4 page in millimeters.
	A4HeightMM = 297.0
)

// PtToMM converts a value in points to millimeters.
func PtToMM(pt float64) float64 {
	return pt * MMPerPoint
}

// MMToPt converts a value in millimeters to points.
func MMToPt(mm float64) float64 {
	return mm * PointsPerMM
}

// PxToMM converts a pixel count to millimeters.
func PxToMM(px float64) float64 {
	return px * MMPerPixel
}

// HeaderHeight returns the header region height for a page of the given
// height, in the same unit as the input.
func HeaderHeight(pageHeight float64) float64 {
	return pageHeight * HeaderHeightRatio
}

// Color represents a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ColorFromRGB decomposes a packed 24-bit RGB value (0xRRGGBB).
func ColorFromRGB(packed int) Color {
	return Color{
		R: uint8((packed >> 16) & 0xFF),
		G: uint8((packed >> 8) & 0xFF),
		B: uint8(packed & 0xFF),
	}
}

// RGB packs the color back into a 24-bit value.
func (c Color) RGB() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Black is the default text color.
var Black = Color{}
