package vector

import (
	"testing"

	"lasertrace/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, geometry.Point2D{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestSmoothEndpointsTruncated(t *testing.T) {
	in := pts(0, 0, 3, 0, 6, 0)
	out := Smooth(in)
	require.Len(t, out, 3)
	assert.InDelta(t, 1.5, out[0].X, 1e-9) // (0+3)/2
	assert.InDelta(t, 3.0, out[1].X, 1e-9) // (0+3+6)/3
	assert.InDelta(t, 4.5, out[2].X, 1e-9) // (3+6)/2
}

func TestSimplifyEpsilonZeroIsIdentityOnNonCollinear(t *testing.T) {
	in := pts(0, 0, 1, 1, 2, 0, 3, 1)
	out := Simplify(in, 0)
	assert.Equal(t, in, out)
}

func TestSimplifyDropsCollinearInterior(t *testing.T) {
	in := pts(0, 0, 1, 0, 2, 0, 3, 0)
	out := Simplify(in, 0.8)
	assert.Equal(t, pts(0, 0, 3, 0), out)
}

func TestMergeChainsBridgesGap(t *testing.T) {
	a := pts(0, 0, 1, 0, 2, 0)
	b := pts(5, 0, 6, 0, 7, 0) // gap of 3 from (2,0) to (5,0)
	merged := MergeChains([][]geometry.Point2D{a, b}, 4.0)
	require.Len(t, merged, 1)
	assert.Len(t, merged[0], 6)
}

func TestMergeChainsRespectsThreshold(t *testing.T) {
	a := pts(0, 0, 1, 0, 2, 0)
	b := pts(20, 0, 21, 0)
	merged := MergeChains([][]geometry.Point2D{a, b}, 4.0)
	assert.Len(t, merged, 2)
}

func TestDetectClosureOutline(t *testing.T) {
	in := pts(0, 0, 10, 0, 10, 10, 5, 19)
	out, closed := DetectClosure(in, Outline)
	assert.True(t, closed)
	assert.Equal(t, out[0], out[len(out)-1])
}

func TestDetectClosureCenterlineOpen(t *testing.T) {
	in := pts(0, 0, 10, 0, 10, 10)
	_, closed := DetectClosure(in, Centerline)
	assert.False(t, closed)
}

func TestOptimizeWithoutSmoothingIsIdempotentUpToFloatNoise(t *testing.T) {
	p := Path{Kind: Outline, Points: pts(0, 0, 10, 0, 10, 10, 0, 10)}
	first := Optimize(p, DefaultOptions())
	second := Optimize(Path{Kind: first.Kind, Points: first.Points}, Options{Epsilon: DefaultRDPEpsilon, SkipSmoothing: true})
	require.Len(t, second.Points, len(first.Points))
	for i := range first.Points {
		assert.InDelta(t, first.Points[i].X, second.Points[i].X, 1e-6)
		assert.InDelta(t, first.Points[i].Y, second.Points[i].Y, 1e-6)
	}
}
