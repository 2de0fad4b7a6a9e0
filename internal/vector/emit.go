package vector

import (
	"fmt"
	"strings"
)

// PixelsPerMM converts pixels to millimetres at 96 DPI (96 / 25.4).
const PixelsPerMM = 3.7795

// OutlineColor and CenterlineColor are the fixed stroke colours for each
// layer.
const (
	OutlineColor    = "#00ff00"
	CenterlineColor = "#0000ff"
)

// StrokeWidth is the fixed display stroke width, in display units.
const StrokeWidth = 2

// Document is a textual 2D vector document: one root group containing one
// polyline per optimized path.
type Document struct {
	WidthMM, HeightMM float64
	ViewW, ViewH      int
	Body               string
}

// Emit renders paths into a Document. W and H are the unpadded image
// extent; pad is the padding to subtract from every coordinate (spec.md
// §4.1/§4.9). Layer colouring and closure markers are derived from each
// path's Kind and IsClosed fields.
func Emit(paths []OptimizedPath, w, h, pad int) Document {
	var body strings.Builder
	body.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%gmm" height="%gmm" viewBox="0 0 %d %d">`+"\n",
		float64(w)/PixelsPerMM, float64(h)/PixelsPerMM, w, h))
	body.WriteString("<g>\n")

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		color := OutlineColor
		if p.Kind == Centerline {
			color = CenterlineColor
		}

		var d strings.Builder
		fmt.Fprintf(&d, "M %g,%g", p.Points[0].X-float64(pad), p.Points[0].Y-float64(pad))
		for _, pt := range p.Points[1:] {
			fmt.Fprintf(&d, " L %g,%g", pt.X-float64(pad), pt.Y-float64(pad))
		}
		if p.IsClosed {
			d.WriteString(" Z")
		}

		fmt.Fprintf(&body,
			`<path d="%s" stroke="%s" stroke-width="%d" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			d.String(), color, StrokeWidth)
	}

	body.WriteString("</g>\n</svg>\n")

	return Document{
		WidthMM:  float64(w) / PixelsPerMM,
		HeightMM: float64(h) / PixelsPerMM,
		ViewW:    w,
		ViewH:    h,
		Body:     body.String(),
	}
}

// String returns the serialized document text.
func (d Document) String() string {
	return d.Body
}
