// Package pipeline implements the orchestrator (C8): parameter-driven
// dispatch between outline and centerline tracing, layer assembly, and the
// three-document vector emission that the programmatic entry point
// (spec.md §6) exposes as Process and SuggestParams.
package pipeline

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"lasertrace/internal/raster"
	"lasertrace/internal/vector"
	"lasertrace/pkg/geometry"
)

// ErrorKind enumerates the core's fatal failure modes (spec.md §7). These
// are the only conditions that abort an invocation; everything else is
// represented as empty layers in a successful Result.
type ErrorKind int

const (
	InvalidBuffer ErrorKind = iota
	ZeroDimension
	OutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidBuffer:
		return "InvalidBuffer"
	case ZeroDimension:
		return "ZeroDimension"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// ProcessError reports a fatal precondition failure from Process.
type ProcessError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Params is the two-knob tuning surface exposed to callers (spec.md §3/§6).
type Params struct {
	DetailLevel            int // [0,100]
	CenterlineSensitivity  int // [0,100]
}

// DefaultParams is the compile-time constant SuggestParams falls back to;
// a placeholder for future image-driven heuristics (spec.md §6).
var DefaultParams = Params{DetailLevel: 50, CenterlineSensitivity: 50}

// Stats is the caller-facing accounting record (spec.md §6).
type Stats struct {
	OutlineCount    int
	CenterlineCount int
	GapsDetected    int // always 0; reserved, per spec.md §6
	TotalPaths      int
	// OutputSize is left zero by Process; the caller fills it in by
	// measuring the serialized document it chose to emit (spec.md §9).
	OutputSize int
}

// Result bundles the three vector documents, the paths that back them (for
// callers that want to render a raster preview rather than parse the
// document text back apart), and the stats record.
type Result struct {
	Full    vector.Document
	Cut     vector.Document
	Engrave vector.Document

	FullPaths    []vector.OptimizedPath
	CutPaths     []vector.OptimizedPath
	EngravePaths []vector.OptimizedPath

	Stats Stats
}

// noiseFloorArea is the minimum region area kept during Stage B (spec.md §4.8).
const noiseFloorArea = 15

// minPolylinePoints is the pre-optimization noise floor: polylines with
// at most this many points are discarded before they ever reach the
// optimizer.
const minPolylinePoints = 3

// Process runs the full pipeline: binarize, morphology/silhouette, region
// analysis, per-region outline-or-centerline tracing, path optimization,
// and three-document vector emission.
func Process(buf []byte, w, h int, params Params) (Result, error) {
	if w == 0 || h == 0 {
		return Result{}, &ProcessError{Kind: ZeroDimension, Msg: "width and height must be non-zero"}
	}
	if len(buf) != w*h*4 {
		return Result{}, &ProcessError{Kind: InvalidBuffer, Msg: fmt.Sprintf("buffer length %d != %d", len(buf), w*h*4)}
	}

	padded, pw, ph := raster.PadRGBA(buf, w, h, raster.Padding)
	binary := raster.Binarize(padded, pw, ph, raster.DefaultLuminanceThreshold)

	var paths []vector.OptimizedPath

	if silhouette, ok := traceSilhouette(binary); ok {
		paths = append(paths, silhouette)
	}

	if params.DetailLevel > 0 {
		paths = append(paths, traceDetails(binary, params)...)
	}

	full := assembleLayer(paths, -1)
	cut := assembleLayer(paths, int(vector.Outline))
	engrave := assembleLayer(paths, int(vector.Centerline))

	stats := Stats{TotalPaths: len(paths)}
	for _, p := range paths {
		if p.Kind == vector.Outline {
			stats.OutlineCount++
		} else {
			stats.CenterlineCount++
		}
	}

	return Result{
		Full:    vector.Emit(full, w, h, raster.Padding),
		Cut:     vector.Emit(cut, w, h, raster.Padding),
		Engrave: vector.Emit(engrave, w, h, raster.Padding),

		FullPaths:    full,
		CutPaths:     cut,
		EngravePaths: engrave,
		Stats:   stats,
	}, nil
}

// SuggestParams returns the default parameter set. Placeholder for future
// image-driven heuristics, per spec.md §6.
func SuggestParams(buf []byte) Params {
	return DefaultParams
}

// traceSilhouette produces the morphological silhouette, traces its
// contour(s), and keeps the polygon of maximum shoelace-area magnitude —
// the silhouette is always emitted on the OUTLINE layer, forced closed. If
// the silhouette mask contains multiple disjoint blobs (possible when the
// dilation radius is small), only the largest is kept; this is intentional
// per spec.md §9. A figure with fewer than noiseFloorArea foreground pixels
// yields no silhouette.
func traceSilhouette(binary raster.Mask) (vector.OptimizedPath, bool) {
	foreground := 0
	for _, v := range binary.Pix {
		if v != 0 {
			foreground++
		}
	}
	if foreground < noiseFloorArea {
		return vector.OptimizedPath{}, false
	}

	sil := raster.Silhouette(binary, raster.DefaultDilationRadius)

	var pixels []geometry.PointInt
	for y := 0; y < sil.H; y++ {
		for x := 0; x < sil.W; x++ {
			if sil.At(x, y) != 0 {
				pixels = append(pixels, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	if len(pixels) == 0 {
		return vector.OptimizedPath{}, false
	}

	polygons := raster.TraceContours(pixels)
	if len(polygons) == 0 {
		return vector.OptimizedPath{}, false
	}

	best := -1
	bestArea := -1.0
	for i, poly := range polygons {
		area := math.Abs(geometry.ShoelaceArea(toFloatPoints(poly)))
		if area > bestArea {
			bestArea = area
			best = i
		}
	}
	if len(polygons[best]) <= minPolylinePoints {
		return vector.OptimizedPath{}, false
	}

	optimized := vector.Optimize(vector.Path{Kind: vector.Outline, Points: toFloatPoints(polygons[best])},
		vector.Options{Epsilon: vector.DefaultRDPEpsilon, ForceClosed: true})
	if len(optimized.Points) < 2 {
		return vector.OptimizedPath{}, false
	}
	return optimized, true
}

// indexedRegion pairs a region with its position in FindRegions' discovery
// order, so that order can be restored after sorting by area.
type indexedRegion struct {
	raster.Region
	idx int
}

// traceDetails implements Stage B: region enumeration, noise-floor and
// detail-level cutoffs, and per-region dispatch between outline tracing
// (thick regions) and skeleton+chain centerline tracing (thin regions).
// Per-region work is fanned out over a bounded worker pool, but results are
// re-sorted back into region-discovery order before returning, so output is
// deterministic regardless of scheduling (spec.md §5).
func traceDetails(binary raster.Mask, params Params) []vector.OptimizedPath {
	regions := raster.FindRegions(binary)

	var kept []indexedRegion
	for i, r := range regions {
		if r.Area >= noiseFloorArea {
			kept = append(kept, indexedRegion{Region: r, idx: i})
		}
	}
	if len(kept) == 0 {
		return nil
	}

	byArea := append([]indexedRegion(nil), kept...)
	sort.SliceStable(byArea, func(i, j int) bool { return byArea[i].Area > byArea[j].Area })
	maxArea := byArea[0].Area

	factor := math.Pow((100-float64(params.DetailLevel))/100, 3)
	areaCutoff := float64(maxArea) * factor * 0.02

	var survivors []indexedRegion
	for _, r := range byArea {
		if float64(r.Area) >= areaCutoff {
			survivors = append(survivors, r)
		}
	}

	fillTh := 2 + float64(params.CenterlineSensitivity)*3

	// Restore region-discovery order: the area sort above was only needed
	// to find maxArea and apply the cutoff.
	sort.SliceStable(survivors, func(i, j int) bool { return survivors[i].idx < survivors[j].idx })

	results := make([][]vector.OptimizedPath, len(survivors))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workerCount())

	for i := range survivors {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = traceRegion(survivors[i].Region, fillTh)
		}(i)
	}
	wg.Wait()

	var out []vector.OptimizedPath
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func workerCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// traceRegion dispatches a single region to outline or centerline tracing
// depending on its crude stroke-width estimate.
func traceRegion(r raster.Region, fillTh float64) []vector.OptimizedPath {
	if r.AvgWidth > fillTh {
		return traceRegionOutline(r)
	}
	return traceRegionCenterline(r)
}

func traceRegionOutline(r raster.Region) []vector.OptimizedPath {
	polygons := raster.TraceContours(r.Pixels)
	var out []vector.OptimizedPath
	for _, poly := range polygons {
		if len(poly) <= minPolylinePoints {
			continue
		}
		op := vector.Optimize(vector.Path{Kind: vector.Outline, Points: toFloatPoints(poly)}, vector.DefaultOptions())
		if len(op.Points) >= 2 {
			out = append(out, op)
		}
	}
	return out
}

func traceRegionCenterline(r raster.Region) []vector.OptimizedPath {
	local := r.Mask()
	skeleton := raster.Skeletonize(local)
	chains := raster.TraceChains(skeleton)

	var chainPoints [][]geometry.Point2D
	for _, c := range chains {
		if len(c) <= minPolylinePoints {
			continue
		}
		pts := make([]geometry.Point2D, len(c))
		for i, p := range c {
			pts[i] = geometry.Point2D{X: float64(p.X + r.Bounds.MinX), Y: float64(p.Y + r.Bounds.MinY)}
		}
		chainPoints = append(chainPoints, pts)
	}

	merged := vector.MergeChains(chainPoints, vector.DefaultMergeDistance)

	var out []vector.OptimizedPath
	for _, c := range merged {
		op := vector.Optimize(vector.Path{Kind: vector.Centerline, Points: c}, vector.DefaultOptions())
		if len(op.Points) >= 2 {
			out = append(out, op)
		}
	}
	return out
}

// assembleLayer filters paths by kind. kind == -1 returns every path (the
// "full" layer = cut ∪ engrave).
func assembleLayer(paths []vector.OptimizedPath, kind int) []vector.OptimizedPath {
	if kind < 0 {
		out := make([]vector.OptimizedPath, len(paths))
		copy(out, paths)
		return out
	}
	var out []vector.OptimizedPath
	for _, p := range paths {
		if int(p.Kind) == kind {
			out = append(out, p)
		}
	}
	return out
}

func toFloatPoints(pts []geometry.PointInt) []geometry.Point2D {
	out := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		out[i] = p.ToFloat()
	}
	return out
}
