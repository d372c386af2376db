package canny

import "github.com/Fepozopo/edgeterm/pkg/raster"

// gradientStep is the (row, col) step one pixel along each quantized gradient
// direction. Rows grow downward, matching the sign of the vertical Sobel kernel.
var gradientStep = [...][2]int{
	Dir0:   {0, 1},  // gradient along the row: west/east neighbors
	Dir45:  {1, 1},  // northwest/southeast neighbors
	Dir90:  {1, 0},  // north/south neighbors
	Dir135: {1, -1}, // northeast/southwest neighbors
}

// SuppressNonMaxima thins the ridges of mag. A pixel keeps its magnitude only
// when it is a local maximum along its gradient direction: strictly greater
// than the neighbor behind it and at least the neighbor ahead of it, so a
// two-pixel plateau keeps exactly one pixel. Neighbors outside the image count
// as magnitude 0. Every other pixel is set to 0.
func SuppressNonMaxima(mag *raster.Image, dirs *DirectionMap) (*raster.Image, error) {
	if dirs == nil || mag.Rows() != dirs.Rows() || mag.Cols() != dirs.Cols() {
		return nil, ErrDimensionMismatch
	}
	out := raster.New(mag.Rows(), mag.Cols())
	for r := 0; r < mag.Rows(); r++ {
		for c := 0; c < mag.Cols(); c++ {
			behind, ahead := NeighborsAlong(mag, r, c, dirs.At(r, c))
			m := mag.Luma(r, c)
			if m > behind && m >= ahead {
				out.SetLuma(r, c, m)
			}
		}
	}
	return out, nil
}

// NeighborsAlong returns the magnitudes behind and ahead of (r,c) along direction d,
// with out-of-bounds neighbors reported as 0.
func NeighborsAlong(mag *raster.Image, r, c int, d Direction) (behind, ahead float64) {
	step := gradientStep[d]
	return magnitudeAt(mag, r-step[0], c-step[1]), magnitudeAt(mag, r+step[0], c+step[1])
}

func magnitudeAt(mag *raster.Image, r, c int) float64 {
	if !mag.InBounds(r, c) {
		return 0
	}
	return mag.Luma(r, c)
}
