package raster

// Convolve applies kernel k over the luma channel of src and multiplies each
// accumulated sum by coef. Taps that fall outside the image read the nearest
// border pixel. The result is not clipped; every output pixel is grayscale.
func Convolve(src *Image, k Kernel, coef float64) (*Image, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	h, w := src.Rows(), src.Cols()
	out := New(h, w)
	kh, kw := len(k), len(k[0])
	offR := (kh - 1) / 2
	offC := (kw - 1) / 2
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			acc := 0.0
			for i := 0; i < kh; i++ {
				// extend the edge pixels outward
				r := clampInt(row+i-offR, 0, h-1)
				for j := 0; j < kw; j++ {
					c := clampInt(col+j-offC, 0, w-1)
					acc += k[i][j] * src.pix[r*w+c].Y
				}
			}
			out.pix[row*w+col] = Gray(acc * coef)
		}
	}
	return out, nil
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
