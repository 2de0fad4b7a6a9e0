package raster

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DefaultDilationRadius is the default number of dilation passes applied
// before the silhouette fill.
const DefaultDilationRadius = 4

// dilateKernel is a 3x3 cross (4-connected) structuring element: one
// DilateWithParams iteration with it grows the foreground by exactly one
// pixel along N/S/E/W, matching the original per-pass behaviour (diagonals
// are left untouched by a single pass).
func dilateKernel() gocv.Mat {
	return gocv.GetStructuringElement(gocv.MorphCross, image.Pt(3, 3))
}

// Dilate grows the foreground by r 4-neighbour passes, via gocv's
// DilateWithParams with a cross structuring element and r iterations —
// the same MorphologyEx/GetStructuringElement pairing the teacher uses to
// clean up its trace masks (cm68-traces/internal/trace/detector.go's
// CleanupMask).
func Dilate(m Mask, r int) Mask {
	if r <= 0 {
		return m.Clone()
	}

	src := maskToMat(m)
	defer src.Close()

	kernel := dilateKernel()
	defer kernel.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.DilateWithParams(src, &dst, kernel, image.Pt(-1, -1), r, gocv.BorderConstant, gocv.NewScalar(0, 0, 0, 0))

	return matToMask(dst)
}

// Silhouette computes a solid blob equal to the figure's hull minus
// external holes: dilate, then find the outer contours and draw each one
// filled. A contour's interior is filled regardless of holes traced inside
// it, so enclosed background is absorbed the same way flood-filling from
// the border would absorb it — this is the teacher's FillRegions pattern
// (cm68-traces/internal/trace/detector.go:313-328), not a flood-fill.
func Silhouette(binary Mask, r int) Mask {
	dilated := Dilate(binary, r)
	return fillContours(dilated)
}

// fillContours finds the external contours of m and draws each one filled
// onto a blank canvas, via gocv.FindContours + gocv.DrawContours. Contours
// with non-positive gocv.ContourArea are dropped before filling, the same
// noise-area check the teacher applies before keeping a silkscreen contour
// (cm68-traces/internal/trace/detector.go:425-434) — by the time a mask
// reaches here it has already been dilated, so a degenerate contour is
// rasterization noise, not a real feature.
func fillContours(m Mask) Mask {
	src := maskToMat(m)
	defer src.Close()

	filled := gocv.NewMatWithSize(m.H, m.W, gocv.MatTypeCV8U)
	defer filled.Close()

	contours := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) <= 0 {
			continue
		}
		gocv.DrawContours(&filled, contours, i, white, -1)
	}

	return matToMask(filled)
}
