package raster

import "lasertrace/pkg/geometry"

// MinChainLength is the shortest chain kept by TraceChains; shorter chains
// are discarded as thinning noise.
const MinChainLength = 3

// TraceChains performs greedy chain extraction over a skeleton mask: scan
// row-major; for each unvisited skeleton pixel, start a chain; at each step
// look at the 8 neighbours in the fixed order N, NE, E, SE, S, SW, W, NW,
// take the first that is a skeleton pixel and unvisited, append it, mark it
// visited, and repeat until no such neighbour exists.
//
// This is intentionally simple: branch points are left as T-shaped breaks
// between chains, which the path optimizer's endpoint merging may
// reconnect. Every skeleton pixel appears in exactly one chain; a maximal
// skeleton curve is not guaranteed to produce exactly one chain.
func TraceChains(m Mask) [][]geometry.PointInt {
	visited := NewMask(m.W, m.H)
	var chains [][]geometry.PointInt

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.At(x, y) == 0 || visited.At(x, y) != 0 {
				continue
			}
			chain := traceOneChain(m, visited, x, y)
			if len(chain) >= MinChainLength {
				chains = append(chains, chain)
			}
		}
	}
	return chains
}

func traceOneChain(m, visited Mask, sx, sy int) []geometry.PointInt {
	chain := []geometry.PointInt{{X: sx, Y: sy}}
	visited.Set(sx, sy, 1)

	x, y := sx, sy
	for {
		found := false
		var nx, ny int
		for _, d := range neighbors8Clockwise {
			cx, cy := x+d[0], y+d[1]
			if m.At(cx, cy) != 0 && visited.At(cx, cy) == 0 {
				nx, ny = cx, cy
				found = true
				break
			}
		}
		if !found {
			break
		}
		visited.Set(nx, ny, 1)
		chain = append(chain, geometry.PointInt{X: nx, Y: ny})
		x, y = nx, ny
	}
	return chain
}
