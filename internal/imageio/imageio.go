// Package imageio decodes source images into the row-major RGBA pixel
// buffers the pipeline core expects, and writes text-based vector documents
// back out to disk.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// SupportedFormats lists the file extensions Load accepts.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}
}

// Buffer is a decoded, row-major RGBA pixel buffer ready for the pipeline's
// Process entry point.
type Buffer struct {
	Width, Height int
	Pix           []byte
}

// Load decodes the image at path and converts it into a Buffer. Formats are
// recognized by their registered stdlib/x-image decoders, not by file
// extension, so any of image/png, image/jpeg, x/image/tiff, or x/image/bmp
// content will decode correctly regardless of extension.
func Load(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Buffer{}, fmt.Errorf("decode image: %w", err)
	}

	return toRGBA(img), nil
}

// toRGBA normalizes any decoded image.Image into a tightly-packed row-major
// RGBA buffer, discarding the source's stride.
func toRGBA(img image.Image) Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if rgba.Stride == w*4 {
		return Buffer{Width: w, Height: h, Pix: rgba.Pix}
	}

	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		srcRow := y * rgba.Stride
		dstRow := y * w * 4
		copy(pix[dstRow:dstRow+w*4], rgba.Pix[srcRow:srcRow+w*4])
	}
	return Buffer{Width: w, Height: h, Pix: pix}
}

// WriteDocument writes the serialized text of a vector document to path.
func WriteDocument(path, body string) error {
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}
