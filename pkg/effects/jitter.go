package effects

import (
	"math/rand"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Jitter scrambles img in place. Visiting pixels in row-major order, each one
// is swapped with the pixel at a random offset in
// [-ceil(radius/2), radius-1-ceil(radius/2)] on both axes, clamped to the
// image. A radius below 1 leaves img unchanged.
func Jitter(img *raster.Image, radius int, rng *rand.Rand) {
	if radius < 1 {
		return
	}
	shift := (radius + 1) / 2
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			dc := rng.Intn(radius) - shift
			dr := rng.Intn(radius) - shift
			tr := clampInt(r+dr, 0, img.Rows()-1)
			tc := clampInt(c+dc, 0, img.Cols()-1)
			p := img.At(r, c)
			img.Set(r, c, img.At(tr, tc))
			img.Set(tr, tc, p)
		}
	}
}
