package raster

// BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Pixel holds a luma value and, for color pixels, the RGB channels it was derived from.
// Channel values are nominally in [0,1] but intermediate stages may leave that range.
type Pixel struct {
	Gray    bool
	R, G, B float64
	Y       float64
}

// Gray returns a grayscale pixel with luma y.
func Gray(y float64) Pixel {
	return Pixel{Gray: true, R: y, G: y, B: y, Y: y}
}

// RGB returns a color pixel; its luma is derived per ITU BT.601.
func RGB(r, g, b float64) Pixel {
	return Pixel{R: r, G: g, B: b, Y: Luma(r, g, b)}
}

// Luma returns the BT.601 weighted brightness of r, g, b.
func Luma(r, g, b float64) float64 {
	return lumaR*r + lumaG*g + lumaB*b
}
