package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidRGBA(w, h int, r, g, b, a byte) []byte {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = r, g, b, a
	}
	return buf
}

func TestBinarizeAlphaFloor(t *testing.T) {
	buf := solidRGBA(2, 2, 0, 0, 0, 10) // near-transparent black
	m := Binarize(buf, 2, 2, DefaultLuminanceThreshold)
	for _, v := range m.Pix {
		assert.Equal(t, byte(0), v)
	}
}

func TestBinarizeDarkOnLight(t *testing.T) {
	buf := solidRGBA(2, 2, 10, 10, 10, 255) // dark, opaque
	m := Binarize(buf, 2, 2, DefaultLuminanceThreshold)
	for _, v := range m.Pix {
		assert.Equal(t, byte(1), v)
	}
}

func TestBinarizeIdempotentOnBinaryGrayscale(t *testing.T) {
	// An already-binary {0,255} grayscale buffer re-binarizes to itself.
	buf := make([]byte, 0, 4*4*4)
	vals := []byte{0, 255, 0, 255}
	for _, v := range vals {
		buf = append(buf, v, v, v, 255)
	}
	m1 := Binarize(buf, 4, 1, DefaultLuminanceThreshold)
	// Re-render m1 as a grayscale RGBA buffer and re-binarize.
	buf2 := make([]byte, 0, len(buf))
	for _, v := range m1.Pix {
		g := byte(255)
		if v == 1 {
			g = 0
		}
		buf2 = append(buf2, g, g, g, 255)
	}
	m2 := Binarize(buf2, 4, 1, DefaultLuminanceThreshold)
	assert.Equal(t, m1.Pix, m2.Pix)
}

func TestPadRGBAWhiteBorder(t *testing.T) {
	buf := solidRGBA(2, 2, 0, 0, 0, 255)
	out, ow, oh := PadRGBA(buf, 2, 2, 3)
	require.Equal(t, 8, ow)
	require.Equal(t, 8, oh)
	// Corner must be white.
	assert.Equal(t, byte(255), out[0])
	// Original content translated by (3,3) must still be black.
	idx := ((3*ow + 3) * 4)
	assert.Equal(t, byte(0), out[idx])
}

func TestDilateGrowsByOnePixelPerPass(t *testing.T) {
	m := NewMask(5, 5)
	m.Set(2, 2, 1)
	d := Dilate(m, 1)
	assert.Equal(t, byte(1), d.At(2, 1))
	assert.Equal(t, byte(1), d.At(2, 3))
	assert.Equal(t, byte(1), d.At(1, 2))
	assert.Equal(t, byte(1), d.At(3, 2))
	assert.Equal(t, byte(0), d.At(1, 1)) // diagonal untouched by 4-neighbour dilation
}

func TestSilhouetteFillsHoles(t *testing.T) {
	m := NewMask(7, 7)
	for x := 1; x < 6; x++ {
		m.Set(x, 1, 1)
		m.Set(x, 5, 1)
	}
	for y := 1; y < 6; y++ {
		m.Set(1, y, 1)
		m.Set(5, y, 1)
	}
	sil := Silhouette(m, 0)
	assert.Equal(t, byte(1), sil.At(3, 3)) // interior hole filled
}

func TestFindRegionsPartitionForeground(t *testing.T) {
	m := NewMask(6, 3)
	m.Set(0, 0, 1)
	m.Set(1, 0, 1)
	m.Set(4, 2, 1)

	regions := FindRegions(m)
	require.Len(t, regions, 2)
	assert.Equal(t, 2, regions[0].Area)
	assert.Equal(t, 1, regions[1].Area)
}

func TestRegionAvgWidthFilledDisk(t *testing.T) {
	// A filled disk has avgWidth well above a thin-stroke threshold.
	m := NewMask(41, 41)
	cx, cy, radius := 20, 20, 18
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				m.Set(x, y, 1)
			}
		}
	}
	regions := FindRegions(m)
	require.Len(t, regions, 1)
	assert.Greater(t, regions[0].AvgWidth, 20.0)
}

func TestTraceContoursProducesClosedSquare(t *testing.T) {
	m := NewMask(10, 10)
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			m.Set(x, y, 1)
		}
	}
	regions := FindRegions(m)
	require.Len(t, regions, 1)
	polys := TraceContours(regions[0].Pixels)
	require.NotEmpty(t, polys)
	assert.GreaterOrEqual(t, len(polys[0]), 4)
}

func TestSkeletonizeThickStrokeYieldsUnitWidth(t *testing.T) {
	m := NewMask(20, 20)
	for y := 5; y < 15; y++ {
		for x := 2; x < 18; x++ {
			m.Set(x, y, 1)
		}
	}
	sk := Skeletonize(m)
	// The stroke is horizontal, so its width is measured per column.
	for x := 0; x < sk.W; x++ {
		count := 0
		for y := 0; y < sk.H; y++ {
			if sk.At(x, y) != 0 {
				count++
			}
		}
		assert.LessOrEqual(t, count, 2, "column %d should not be several pixels tall", x)
	}
}

func TestSkeletonizeAlreadyThinIsFixedPoint(t *testing.T) {
	m := NewMask(10, 10)
	for x := 1; x < 9; x++ {
		m.Set(x, 5, 1)
	}
	sk := Skeletonize(m)
	assert.Equal(t, m.Pix, sk.Pix)
}

func TestTraceChainsDiscardsShortNoise(t *testing.T) {
	m := NewMask(10, 10)
	m.Set(1, 1, 1) // isolated single pixel: chain length 1 < MinChainLength
	for x := 3; x < 9; x++ {
		m.Set(x, 5, 1) // length-6 chain kept
	}
	chains := TraceChains(m)
	require.Len(t, chains, 1)
	assert.Len(t, chains[0], 6)
}
