package canny

import "github.com/Fepozopo/edgeterm/pkg/raster"

// visitedSet is a 1-bit-per-pixel mask scoped to one LinkHysteresis call.
type visitedSet []byte

func newVisitedSet(n int) visitedSet { return make(visitedSet, (n+7)/8) }

func (v visitedSet) has(i int) bool { return (v[i>>3]>>(uint(i)&7))&1 == 1 }

func (v visitedSet) add(i int) { v[i>>3] |= 1 << (uint(i) & 7) }

// LinkHysteresis mutates img, a Classify output, into a binary edge map.
// From every seed still at exactly 1.0 it walks the 8-connected neighborhood
// depth-first, entering each unvisited pixel whose value is >= 0.5 and
// promoting it to 1.0. Candidates never reached from a seed are dropped by a
// final threshold at 1.0. The walk uses an explicit stack, so its depth is
// bounded by the heap rather than the goroutine stack.
func LinkHysteresis(img *raster.Image, seeds []raster.Coord) {
	rows, cols := img.Rows(), img.Cols()
	visited := newVisitedSet(rows * cols)
	stack := make([]raster.Coord, 0, 1024)

	for _, s := range seeds {
		if !img.InBounds(s.Row, s.Col) || img.Luma(s.Row, s.Col) != ValueStrong {
			continue
		}
		if visited.has(s.Row*cols + s.Col) {
			continue
		}
		visited.add(s.Row*cols + s.Col)
		stack = append(stack, s)
		for len(stack) > 0 {
			// pop
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			// only reachable from a strong pixel, so this one is strong too
			img.SetLuma(p.Row, p.Col, ValueStrong)
			for r := p.Row - 1; r <= p.Row+1; r++ {
				for c := p.Col - 1; c <= p.Col+1; c++ {
					if !img.InBounds(r, c) {
						continue
					}
					i := r*cols + c
					if visited.has(i) || img.Luma(r, c) < ValueCandidate {
						continue
					}
					visited.add(i)
					stack = append(stack, raster.Coord{Row: r, Col: c})
				}
			}
		}
	}

	// remove any unconnected candidates
	img.Threshold(ValueStrong)
}

// StrongSeeds returns the coordinates of every pixel at exactly 1.0, row-major.
func StrongSeeds(img *raster.Image) []raster.Coord {
	var seeds []raster.Coord
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			if img.Luma(r, c) == ValueStrong {
				seeds = append(seeds, raster.Coord{Row: r, Col: c})
			}
		}
	}
	return seeds
}
