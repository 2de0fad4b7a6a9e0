// Package raster implements the raster-side stages of the line-art-to-laser
// pipeline: binarization, morphology, region analysis, contour tracing, and
// skeletonization. Every mask is a flat, row-major byte slice of 0/1 cells;
// no entity here survives past the owning pipeline invocation.
package raster

// Mask is a W*H row-major binary mask. A cell is 1 (foreground) or 0
// (background). Masks are value-independent of any particular source image
// and are cheap to clone because they are plain byte slices.
type Mask struct {
	W, H int
	Pix  []byte
}

// NewMask allocates a zeroed W*H mask.
func NewMask(w, h int) Mask {
	return Mask{W: w, H: h, Pix: make([]byte, w*h)}
}

// At returns the cell value at (x, y). Out-of-bounds coordinates read as 0
// (background) so callers can probe neighbours near the edge without manual
// bounds checks.
func (m Mask) At(x, y int) byte {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.Pix[y*m.W+x]
}

// Set writes the cell value at (x, y). Out-of-bounds writes are ignored.
func (m Mask) Set(x, y int, v byte) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = v
}

// Clone returns an independent copy of the mask.
func (m Mask) Clone() Mask {
	out := NewMask(m.W, m.H)
	copy(out.Pix, m.Pix)
	return out
}

// neighbors8Clockwise returns the 8 neighbour offsets in clockwise order
// starting at north: N, NE, E, SE, S, SW, W, NW. This ordering is shared by
// the Zhang-Suen neighbour ring (skeleton.go) and the skeleton chain tracer
// (chain.go).
var neighbors8Clockwise = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}
