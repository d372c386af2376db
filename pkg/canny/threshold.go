package canny

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Tri-level values produced by Classify.
const (
	ValueNone      = 0.0
	ValueCandidate = 0.5
	ValueStrong    = 1.0
)

// Thresholds are the cutoffs of the double-threshold pass. Weak <= Strong.
type Thresholds struct {
	Weak   float64
	Strong float64
}

// ComputeThresholds derives weak and strong cutoffs from the distribution of
// mag. Values at or below opts.IgnoreFloor are left out. The remaining values
// are split at their mean: the strong cutoff is the mean of the at-or-above
// group, the weak cutoff the mean of the below group (or, with WeakMidpoint,
// the midpoint between the overall mean and the strong cutoff).
//
// When a group the weak mode relies on is empty the overall mean stands in
// for it, and when nothing clears the floor both cutoffs are +Inf so no pixel
// classifies as an edge.
// In both cases the thresholds are usable and the returned error wraps
// ErrDegenerateStatistics.
func ComputeThresholds(mag *raster.Image, opts Options) (Thresholds, error) {
	values := make([]float64, 0, mag.Rows()*mag.Cols())
	for _, v := range mag.Lumas() {
		// totally ignore these dark values
		if v > opts.IgnoreFloor {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		inf := math.Inf(1)
		return Thresholds{Weak: inf, Strong: inf}, fmt.Errorf("%w: no magnitude above floor %g", ErrDegenerateStatistics, opts.IgnoreFloor)
	}

	mean := groupMean(values)
	var below, above []float64
	for _, v := range values {
		if v < mean {
			below = append(below, v)
		} else {
			above = append(above, v)
		}
	}

	var degenerate error
	t := Thresholds{Weak: mean, Strong: mean}
	if len(above) > 0 {
		t.Strong = groupMean(above)
	} else {
		degenerate = fmt.Errorf("%w: empty strong group (mean %g)", ErrDegenerateStatistics, mean)
	}
	switch {
	case opts.WeakMode == WeakMidpoint:
		t.Weak = (mean + t.Strong) / 2
	case len(below) > 0:
		t.Weak = groupMean(below)
	default:
		degenerate = fmt.Errorf("%w: empty weak group (mean %g)", ErrDegenerateStatistics, mean)
	}
	return t, degenerate
}

// groupMean returns the mean of a non-empty group, kept inside the group's
// range so summation rounding never lifts it past the largest member.
func groupMean(x []float64) float64 {
	m := stat.Mean(x, nil)
	if lo := floats.Min(x); m < lo {
		m = lo
	}
	if hi := floats.Max(x); m > hi {
		m = hi
	}
	return m
}

// Classify maps every pixel of img into the strong (1.0), candidate (0.5) or
// none (0) tier and returns the coordinates of the strong pixels in row-major order.
func Classify(img *raster.Image, t Thresholds) (*raster.Image, []raster.Coord) {
	out := raster.New(img.Rows(), img.Cols())
	out.Format = "P2"
	var seeds []raster.Coord
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			y := img.Luma(r, c)
			switch {
			case y >= t.Strong:
				out.SetLuma(r, c, ValueStrong)
				seeds = append(seeds, raster.Coord{Row: r, Col: c})
			case y >= t.Weak:
				out.SetLuma(r, c, ValueCandidate)
			default:
				out.SetLuma(r, c, ValueNone)
			}
		}
	}
	return out, seeds
}
