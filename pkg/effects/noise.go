package effects

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// AddNoise returns a copy of img with random noise added to every channel
// and the result clamped to [0,1]. kind is "gaussian" (amount is the
// standard deviation) or "uniform" (amount is the largest deviation).
func AddNoise(img *raster.Image, kind string, amount float64, rng *rand.Rand) (*raster.Image, error) {
	var sample func() float64
	switch strings.ToLower(kind) {
	case "gaussian", "normal":
		sample = func() float64 { return rng.NormFloat64() * amount }
	case "uniform":
		sample = func() float64 { return (rng.Float64()*2 - 1) * amount }
	default:
		return nil, fmt.Errorf("unknown noise type %q", kind)
	}
	out := img.Clone()
	if amount <= 0 {
		return out, nil
	}
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			p := img.At(r, c)
			if p.Gray {
				out.SetLuma(r, c, clamp01(p.Y+sample()))
				continue
			}
			out.Set(r, c, raster.RGB(clamp01(p.R+sample()), clamp01(p.G+sample()), clamp01(p.B+sample())))
		}
	}
	return out, nil
}
