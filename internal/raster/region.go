package raster

import (
	"image/color"
	"sort"

	"gocv.io/x/gocv"
	"lasertrace/pkg/geometry"
)

// Region is a maximal 4-connected set of foreground pixels, with cached
// attributes used by the pipeline orchestrator to decide how to trace it.
type Region struct {
	Pixels []geometry.PointInt
	Bounds geometry.RectInt
	Area   int

	// AvgWidth is a crude stroke-thickness heuristic:
	// 2*area / max(boundsWidth, boundsHeight), with the bounds extents
	// counted in pixels (max - min + 1).
	AvgWidth float64
}

// FindRegions partitions an unpadded binary mask into its connected
// components via gocv.FindContours, the same primitive the teacher's
// FillRegions uses to separate blobs before filling each one
// (cm68-traces/internal/trace/detector.go:313-328). Each external contour is
// filled back onto a blank canvas with gocv.DrawContours to recover the
// component's full pixel set — FindContours alone only yields the boundary,
// and the pipeline's area/avgWidth heuristics need the exact pixel count, not
// OpenCV's polygon-area estimate (which is degenerate, reporting 0, for a
// single isolated pixel). Regions are returned sorted by discovery order
// (top row first, then left to right), matching the row-major seed order a
// flood-fill scan would produce, so callers that rely on deterministic
// ordering (noise-floor cutoffs, worker-pool result restoration) are
// unaffected by gocv's internal contour ordering.
func FindRegions(m Mask) []Region {
	src := maskToMat(m)
	defer src.Close()

	contours := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	var regions []Region

	for i := 0; i < contours.Size(); i++ {
		filled := gocv.NewMatWithSize(m.H, m.W, gocv.MatTypeCV8U)
		gocv.DrawContours(&filled, contours, i, white, -1)
		regionMask := matToMask(filled)
		filled.Close()
		// The filled contour also covers any holes; keep foreground cells only.
		for j, v := range m.Pix {
			if v == 0 {
				regionMask.Pix[j] = 0
			}
		}

		region, ok := regionFromMask(regionMask)
		if ok {
			regions = append(regions, region)
		}
	}

	// Pixels[0] is each region's first pixel in row-major order, i.e. the
	// seed a flood-fill scan would start from.
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Pixels[0].Y != regions[j].Pixels[0].Y {
			return regions[i].Pixels[0].Y < regions[j].Pixels[0].Y
		}
		return regions[i].Pixels[0].X < regions[j].Pixels[0].X
	})
	return regions
}

// regionFromMask collects every foreground pixel of a single-component mask
// into a Region, along with its bounding box and avgWidth heuristic.
func regionFromMask(m Mask) (Region, bool) {
	var pixels []geometry.PointInt
	minX, maxX, minY, maxY := m.W, -1, m.H, -1

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.At(x, y) == 0 {
				continue
			}
			pixels = append(pixels, geometry.PointInt{X: x, Y: y})
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if len(pixels) == 0 {
		return Region{}, false
	}

	bounds := geometry.RectInt{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	area := len(pixels)
	span := bounds.Width() + 1
	if bounds.Height()+1 > span {
		span = bounds.Height() + 1
	}
	var avgWidth float64
	if span > 0 {
		avgWidth = 2 * float64(area) / float64(span)
	}

	return Region{Pixels: pixels, Bounds: bounds, Area: area, AvgWidth: avgWidth}, true
}

// Mask extracts a region-local binary mask sized to the region's bounding
// box (inclusive), used as input to the skeletonizer for regions routed to
// the centerline path.
func (r Region) Mask() Mask {
	w := r.Bounds.Width() + 1
	h := r.Bounds.Height() + 1
	m := NewMask(w, h)
	for _, p := range r.Pixels {
		m.Set(p.X-r.Bounds.MinX, p.Y-r.Bounds.MinY, 1)
	}
	return m
}
