package raster

import (
	"image"
	"image/color"
)

// FromImage converts any image.Image into a raster. Gray source images become
// grayscale pixels; everything else keeps its RGB channels normalized to [0,1].
// Alpha is ignored.
func FromImage(src image.Image) *Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := New(b.Dy(), b.Dx())
	gray := false
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		gray = true
		out.Format = "P2"
	default:
		out.Format = "P3"
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// r,g,b are 16-bit [0, 65535]
			r, g, b_, _ := src.At(x, y).RGBA()
			i := (y-b.Min.Y)*out.cols + (x - b.Min.X)
			if gray {
				out.pix[i] = Gray(float64(r) / 65535.0)
				continue
			}
			out.pix[i] = RGB(float64(r)/65535.0, float64(g)/65535.0, float64(b_)/65535.0)
		}
	}
	return out
}

// ToNRGBA renders m as an opaque *image.NRGBA. Channels are clamped to [0,1]
// and grayscale pixels are drawn from their luma.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.cols, m.rows))
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			p := m.pix[r*m.cols+c]
			i := out.PixOffset(c, r)
			if p.Gray {
				v := toUint8(p.Y)
				out.Pix[i+0] = v
				out.Pix[i+1] = v
				out.Pix[i+2] = v
			} else {
				out.Pix[i+0] = toUint8(p.R)
				out.Pix[i+1] = toUint8(p.G)
				out.Pix[i+2] = toUint8(p.B)
			}
			out.Pix[i+3] = 255
		}
	}
	return out
}

// ToGray renders the luma channel as an *image.Gray.
func (m *Image) ToGray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.cols, m.rows))
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.SetGray(c, r, color.Gray{Y: toUint8(m.pix[r*m.cols+c].Y)})
		}
	}
	return out
}

func toUint8(v float64) uint8 {
	return uint8(clampFloat(v, 0, 1)*255.0 + 0.5)
}
