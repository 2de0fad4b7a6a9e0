package raster

import (
	"gocv.io/x/gocv"
	"lasertrace/pkg/geometry"
)

// TraceContours walks the outer boundary of the connected pixel set given in
// pixels, via gocv.FindContours with RetrievalExternal (the same retrieval
// mode the teacher uses to separate blobs before filling them,
// cm68-traces/internal/trace/detector.go:320) and ChainApproxNone, which
// keeps every boundary pixel rather than gocv's usual run-length
// compression — the downstream path optimizer (smoothing, RDP
// simplification) expects to do its own simplification from full-resolution
// input. pixels is rasterized into a bounding-box-local mask first, so only
// the given component is ever visible to the contour walk; RetrievalExternal
// means holes are not traced separately, which keeps the output path count
// bounded and treats holes as discontinuities on the engrave layer, per
// spec.
func TraceContours(pixels []geometry.PointInt) [][]geometry.PointInt {
	if len(pixels) == 0 {
		return nil
	}

	minX, maxX, minY, maxY := pixels[0].X, pixels[0].X, pixels[0].Y, pixels[0].Y
	for _, p := range pixels[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	local := NewMask(maxX-minX+1, maxY-minY+1)
	for _, p := range pixels {
		local.Set(p.X-minX, p.Y-minY, 1)
	}

	src := maskToMat(local)
	defer src.Close()

	contours := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	var polygons [][]geometry.PointInt
	for i := 0; i < contours.Size(); i++ {
		pts := contours.At(i).ToPoints()
		if len(pts) < 3 {
			continue
		}
		poly := make([]geometry.PointInt, len(pts))
		for j, pt := range pts {
			poly[j] = geometry.PointInt{X: pt.X + minX, Y: pt.Y + minY}
		}
		polygons = append(polygons, poly)
	}
	return polygons
}
