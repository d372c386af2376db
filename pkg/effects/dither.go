package effects

import (
	"math"
	"math/rand"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// diffuse runs Floyd–Steinberg error diffusion over img's luma with the
// given quantizer and writes the quantized values back as grayscale.
func diffuse(img *raster.Image, quantize func(float64) float64) {
	rows, cols := img.Rows(), img.Cols()
	y := img.Lumas()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			old := y[i]
			y[i] = quantize(old)
			e := old - y[i]
			if c < cols-1 {
				y[i+1] += e * 7.0 / 16.0
			}
			if r < rows-1 {
				if c > 0 {
					y[i+cols-1] += e * 3.0 / 16.0
				}
				y[i+cols] += e * 5.0 / 16.0
				if c < cols-1 {
					y[i+cols+1] += e * 1.0 / 16.0
				}
			}
		}
	}
	for i, v := range y {
		img.SetLuma(i/cols, i%cols, v)
	}
}

// Dither reduces img to black and white in place with Floyd–Steinberg error
// diffusion. Luma above 0.5 becomes white. The image is marked as a bitmap.
func Dither(img *raster.Image) {
	diffuse(img, func(v float64) float64 {
		if v > 0.5 {
			return 1
		}
		return 0
	})
	img.Format = "P1"
}

// DitherLevels reduces img in place to depth evenly spaced gray levels with
// Floyd–Steinberg error diffusion. A depth below 2 is treated as 2.
func DitherLevels(img *raster.Image, depth int) {
	if depth < 2 {
		depth = 2
	}
	diffuse(img, func(v float64) float64 { return PaletteLevel(v, depth) })
	img.Format = "P2"
}

// PaletteLevel returns the smallest of depth evenly spaced levels in [0,1]
// that is at least v. Values outside [0,1] land on the end levels.
func PaletteLevel(v float64, depth int) float64 {
	if depth < 2 {
		depth = 2
	}
	n := float64(depth - 1)
	// the tolerance keeps exact levels from rounding up a step
	k := math.Ceil(v*n - 1e-9)
	if k <= 0 {
		return 0
	}
	return clamp01(k / n)
}

// StochasticDither returns a black and white copy of img in which each pixel
// is white with probability equal to its luma.
func StochasticDither(img *raster.Image, rng *rand.Rand) *raster.Image {
	out := raster.New(img.Rows(), img.Cols())
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			if img.Luma(r, c) > rng.Float64() {
				out.SetLuma(r, c, 1)
			}
		}
	}
	out.Format = "P1"
	return out
}
