package raster

// Skeletonize reduces a binary mask to a 1-pixel-wide topological skeleton
// using classic two-subiteration Zhang-Suen thinning. Border rows/columns
// are never examined, matching the original algorithm's requirement that
// every pixel have a full 8-neighbourhood.
//
// A straight 1-pixel-wide line is a fixed point: an end pixel has B=1 and
// fails the 2<=B<=6 test, and an interior pixel has neighbours on two
// opposite sides (A=2) and fails the A=1 test, so neither is marked.
func Skeletonize(m Mask) Mask {
	cur := m.Clone()

	for {
		removed1 := thinSubiteration(&cur, 1)
		removed2 := thinSubiteration(&cur, 2)
		if !removed1 && !removed2 {
			break
		}
	}
	return cur
}

// thinSubiteration runs one Zhang-Suen subiteration (s in {1,2}) over cur in
// place and reports whether any pixel was deleted.
func thinSubiteration(cur *Mask, s int) bool {
	var toRemove [][2]int

	for y := 1; y < cur.H-1; y++ {
		for x := 1; x < cur.W-1; x++ {
			if cur.At(x, y) == 0 {
				continue
			}

			p := neighborRing(*cur, x, y)
			b := 0
			for _, v := range p {
				b += int(v)
			}
			if b < 2 || b > 6 {
				continue
			}
			if transitions(p) != 1 {
				continue
			}

			// p2=p[0], p3=p[1], p4=p[2], p5=p[3], p6=p[4], p7=p[5], p8=p[6], p9=p[7]
			if s == 1 {
				if p[0]*p[2]*p[4] != 0 || p[2]*p[4]*p[6] != 0 {
					continue
				}
			} else {
				if p[0]*p[2]*p[6] != 0 || p[0]*p[4]*p[6] != 0 {
					continue
				}
			}

			toRemove = append(toRemove, [2]int{x, y})
		}
	}

	for _, p := range toRemove {
		cur.Set(p[0], p[1], 0)
	}
	return len(toRemove) > 0
}

// neighborRing returns the 8 neighbours of (x, y) labelled clockwise
// starting at north (p2..p9 in the Zhang-Suen paper): N, NE, E, SE, S, SW,
// W, NW.
func neighborRing(m Mask, x, y int) [8]byte {
	var p [8]byte
	for i, d := range neighbors8Clockwise {
		p[i] = m.At(x+d[0], y+d[1])
	}
	return p
}

// transitions counts the number of 0->1 transitions in the cyclic sequence
// (p2,p3,...,p9,p2).
func transitions(p [8]byte) int {
	count := 0
	for i := 0; i < 8; i++ {
		a := p[i]
		b := p[(i+1)%8]
		if a == 0 && b == 1 {
			count++
		}
	}
	return count
}
