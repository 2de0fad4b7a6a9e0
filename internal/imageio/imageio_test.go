package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadDecodesPNGIntoTightRGBA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")
	writeTestPNG(t, path, 20, 10)

	buf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, buf.Width)
	assert.Equal(t, 10, buf.Height)
	assert.Len(t, buf.Pix, 20*10*4)

	// Pixel (5, 3) was set to R=5, G=3, B=0, A=255.
	i := (3*20 + 5) * 4
	assert.Equal(t, byte(5), buf.Pix[i])
	assert.Equal(t, byte(3), buf.Pix[i+1])
	assert.Equal(t, byte(0), buf.Pix[i+2])
	assert.Equal(t, byte(255), buf.Pix[i+3])
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.png"))
	assert.Error(t, err)
}

func TestWriteDocumentRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	require.NoError(t, WriteDocument(path, "<svg></svg>"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(got))
}
