// Package effects holds the cosmetic raster effects: dithering, pixel
// sorting, jitter, posterization, noise and downscaling. Effects that
// mutate their input say so; the rest return a new image.
package effects

import (
	"math/rand"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// ErrDimensionMismatch is returned when an edge map does not match the image it guides.
var ErrDimensionMismatch = raster.ErrDimensionMismatch

// NewRand returns a generator for the randomized effects. Seed 0 picks a
// fixed non-zero seed so runs stay reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
