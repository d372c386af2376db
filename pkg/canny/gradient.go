package canny

import (
	"math"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// maxMagnitude is the largest Sobel magnitude for input in [0,1]: each
// derivative lies in [-4,4].
var maxMagnitude = math.Sqrt(32)

var (
	gaussRow = raster.Kernel{{0.0545, 0.2442, 0.4026, 0.2442, 0.0545}}
	gaussCol = gaussRow.Transpose()

	gauss159 = raster.Kernel{
		{2, 4, 5, 4, 2},
		{4, 9, 12, 9, 4},
		{5, 12, 15, 12, 5},
		{4, 9, 12, 9, 4},
		{2, 4, 5, 4, 2},
	}

	// Sobel kernels
	sobelX = raster.Kernel{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = raster.Kernel{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// mustConvolve is only used with the package's fixed kernels, which are valid.
func mustConvolve(img *raster.Image, k raster.Kernel, coef float64) *raster.Image {
	out, err := raster.Convolve(img, k, coef)
	if err != nil {
		panic(err)
	}
	return out
}

// Smooth blurs img with the selected Gaussian approximation.
func Smooth(img *raster.Image, mode Smoothing) *raster.Image {
	if mode == SmoothKernel159 {
		return mustConvolve(img, gauss159, 1.0/159.0)
	}
	return mustConvolve(mustConvolve(img, gaussRow, 1.0), gaussCol, 1.0)
}

// Derivatives returns the horizontal and vertical Sobel responses of img.
// For input in [0,1] each value lies in [-4,4].
func Derivatives(img *raster.Image) (dx, dy *raster.Image) {
	return mustConvolve(img, sobelX, 1.0), mustConvolve(img, sobelY, 1.0)
}

// Magnitude returns the per-pixel Euclidean norm of dx and dy, in [0, √32] for
// derivatives of [0,1] input.
func Magnitude(dx, dy *raster.Image) (*raster.Image, error) {
	if !dx.SameSize(dy) {
		return nil, ErrDimensionMismatch
	}
	out := raster.New(dx.Rows(), dx.Cols())
	for r := 0; r < dx.Rows(); r++ {
		for c := 0; c < dx.Cols(); c++ {
			x := dx.Luma(r, c)
			y := dy.Luma(r, c)
			out.SetLuma(r, c, math.Sqrt(x*x+y*y))
		}
	}
	return out, nil
}

// Directions quantizes atan2(dy, dx), taken in degrees over [0,360), into a DirectionMap.
func Directions(dx, dy *raster.Image) (*DirectionMap, error) {
	if !dx.SameSize(dy) {
		return nil, ErrDimensionMismatch
	}
	out := NewDirectionMap(dx.Rows(), dx.Cols())
	for r := 0; r < dx.Rows(); r++ {
		for c := 0; c < dx.Cols(); c++ {
			deg := math.Atan2(dy.Luma(r, c), dx.Luma(r, c)) * 180.0 / math.Pi
			if deg < 0 {
				deg += 360
			}
			if deg >= 360 {
				deg = 0
			}
			out.Set(r, c, QuantizeAngle(deg))
		}
	}
	return out, nil
}

// GradientMagnitudeAndDirection differentiates an already smoothed image and
// returns the magnitude remapped to [0,1] along with the direction map.
func GradientMagnitudeAndDirection(smooth *raster.Image) (*raster.Image, *DirectionMap) {
	dx, dy := Derivatives(smooth)
	// dx and dy come from the same source, so neither call can fail
	mag, _ := Magnitude(dx, dy)
	mag.Remap(0, maxMagnitude)
	dirs, _ := Directions(dx, dy)
	return mag, dirs
}
