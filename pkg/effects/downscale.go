package effects

import "github.com/Fepozopo/edgeterm/pkg/raster"

// Downscale halves both dimensions of img by averaging 2×2 blocks. An odd
// trailing row or column is dropped. Blocks made only of grayscale pixels
// stay grayscale.
func Downscale(img *raster.Image) *raster.Image {
	out := raster.New(img.Rows()/2, img.Cols()/2)
	out.Format = img.Format
	for r := 0; r+2 <= img.Rows(); r += 2 {
		for c := 0; c+2 <= img.Cols(); c += 2 {
			var sr, sg, sb, sy float64
			gray := true
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					p := img.At(r+i, c+j)
					sr += p.R
					sg += p.G
					sb += p.B
					sy += p.Y
					gray = gray && p.Gray
				}
			}
			if gray {
				out.Set(r/2, c/2, raster.Gray(sy/4))
			} else {
				out.Set(r/2, c/2, raster.RGB(sr/4, sg/4, sb/4))
			}
		}
	}
	return out
}

// DownscaleToFit halves img until it has at most maxCols columns. A
// non-positive maxCols is treated as 1.
func DownscaleToFit(img *raster.Image, maxCols int) *raster.Image {
	if maxCols < 1 {
		maxCols = 1
	}
	out := img
	for out.Cols() > maxCols && out.Rows() >= 2 {
		out = Downscale(out)
	}
	if out == img {
		out = img.Clone()
	}
	return out
}
