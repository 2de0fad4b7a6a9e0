package raster

import "gocv.io/x/gocv"

// DefaultLuminanceThreshold is the default dark-on-light cutoff (of 255)
// used when the caller does not override it.
const DefaultLuminanceThreshold = 180

// DefaultAlphaFloor is the alpha value below which a pixel is treated as
// fully transparent background, regardless of its colour channels.
const DefaultAlphaFloor = 50

// Padding is the number of white border pixels added on every side before
// binarization so that outermost strokes are never mistaken for
// image-boundary artefacts by the silhouette contour trace.
const Padding = 10

// Binarize converts a row-major RGBA pixel buffer (4 bytes per pixel) into a
// binary mask. A pixel with alpha below DefaultAlphaFloor is background.
// Otherwise the pixel is foreground iff its luminance is below threshold:
// dark-on-light line art. Binarization is idempotent: re-binarizing an
// already-binary {0,255} grayscale buffer yields the same mask, since an
// all-0 (black) pixel has luminance 0 < threshold and an all-255 (white)
// pixel has luminance 255 >= threshold.
//
// The alpha-floor/luminance reduction has no gocv primitive (it is a plain
// RGBA-to-grayscale fold with a transparency rule this pipeline invents),
// but the actual threshold cut is delegated to gocv.Threshold, the same
// primitive the teacher uses for its own bright/dark split
// (cm68-traces/internal/trace/detector.go's ExtractSilkscreen).
func Binarize(buf []byte, w, h int, threshold uint8) Mask {
	gray := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			a := buf[i+3]
			if a < DefaultAlphaFloor {
				gray[y*w+x] = 255
				continue
			}
			r, g, b := float64(buf[i]), float64(buf[i+1]), float64(buf[i+2])
			gray[y*w+x] = byte(0.299*r + 0.587*g + 0.114*b)
		}
	}

	grayMat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, gray)
	if err != nil {
		return NewMask(w, h)
	}
	defer grayMat.Close()

	bin := gocv.NewMat()
	defer bin.Close()
	// ThresholdBinaryInv: dst = 255 where src <= thresh, 0 otherwise, so
	// dark-on-light pixels (low luminance) land in the foreground. gray holds
	// truncated luminance, so gray <= threshold-1 is exactly luminance <
	// threshold.
	gocv.Threshold(grayMat, &bin, float32(threshold)-1, 255, gocv.ThresholdBinaryInv)

	return matToMask(bin)
}

// PadRGBA surrounds a row-major RGBA buffer with p pixels of opaque white on
// every side, returning the new buffer and its dimensions. This runs before
// Binarize in the pipeline's entry point (spec: padding removes
// image-border ambiguity for the silhouette trace). It is a plain buffer
// copy operating on raw RGBA bytes the raster stage hasn't built a Mat from
// yet, so there is no gocv primitive to ground it on.
func PadRGBA(buf []byte, w, h, p int) (out []byte, ow, oh int) {
	ow, oh = w+2*p, h+2*p
	out = make([]byte, ow*oh*4)
	for i := 0; i < len(out); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = 255, 255, 255, 255
	}
	for y := 0; y < h; y++ {
		srcRow := y * w * 4
		dstRow := ((y+p)*ow + p) * 4
		copy(out[dstRow:dstRow+w*4], buf[srcRow:srcRow+w*4])
	}
	return out, ow, oh
}
