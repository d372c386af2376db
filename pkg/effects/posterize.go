package effects

import (
	"math"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Posterize returns a copy of img with every channel rounded to the nearest
// of levels evenly spaced values. Fewer than 2 levels returns a plain copy.
func Posterize(img *raster.Image, levels int) *raster.Image {
	out := img.Clone()
	if levels < 2 {
		return out
	}
	step := 1.0 / float64(levels-1)
	q := func(v float64) float64 { return clamp01(math.Round(v/step) * step) }
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			p := img.At(r, c)
			if p.Gray {
				out.SetLuma(r, c, q(p.Y))
				continue
			}
			out.Set(r, c, raster.RGB(q(p.R), q(p.G), q(p.B)))
		}
	}
	return out
}
