// Package preview rasterizes emitted vector paths back onto a raster canvas
// for terminal/file debugging, the way the teacher's component detector
// rasterized detected features onto a debug Mat for visual inspection.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"lasertrace/internal/vector"

	"gocv.io/x/gocv"
)

var (
	outlineColor    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	centerlineColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Render draws every optimized path onto a w x h canvas, outlines in green
// and centerlines in blue, and returns the canvas. Callers must Close the
// returned Mat.
func Render(paths []vector.OptimizedPath, w, h, pad int) gocv.Mat {
	canvas := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	canvas.SetTo(gocv.NewScalar(float64(backgroundColor.B), float64(backgroundColor.G), float64(backgroundColor.R), 0))

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		col := outlineColor
		if p.Kind == vector.Centerline {
			col = centerlineColor
		}
		drawPolyline(&canvas, p, pad, col)
	}

	return canvas
}

func drawPolyline(canvas *gocv.Mat, p vector.OptimizedPath, pad int, col color.RGBA) {
	pts := p.Points
	for i := 0; i < len(pts)-1; i++ {
		a := image.Pt(int(pts[i].X)-pad, int(pts[i].Y)-pad)
		b := image.Pt(int(pts[i+1].X)-pad, int(pts[i+1].Y)-pad)
		gocv.Line(canvas, a, b, col, 1)
	}
}

// Save renders paths and writes the result as a PNG file at path.
func Save(paths []vector.OptimizedPath, w, h, pad int, path string) error {
	canvas := Render(paths, w, h, pad)
	defer canvas.Close()

	if ok := gocv.IMWrite(path, canvas); !ok {
		return fmt.Errorf("failed to write preview image %s", path)
	}
	return nil
}
