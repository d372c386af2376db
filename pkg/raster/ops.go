package raster

// Clip clamps every luma value into [0,1], in place. Grayscale pixels keep
// their channels in step with the clamped luma.
func (m *Image) Clip() {
	for i, p := range m.pix {
		y := clampFloat(p.Y, 0, 1)
		if p.Gray {
			m.pix[i] = Gray(y)
			continue
		}
		m.pix[i].Y = y
	}
}

// Remap linearly maps luma values from [a,b] to [0,1], in place.
// A degenerate range (a == b) leaves the image unchanged.
func (m *Image) Remap(a, b float64) {
	if a == b {
		return
	}
	scale := 1.0 / (b - a)
	for i, p := range m.pix {
		m.pix[i] = Gray((p.Y - a) * scale)
	}
}

// Threshold sets every pixel with luma >= v to 1.0 and every other pixel to 0, in place.
func (m *Image) Threshold(v float64) {
	for i, p := range m.pix {
		if p.Y >= v {
			m.pix[i] = Gray(1.0)
		} else {
			m.pix[i] = Gray(0)
		}
	}
}

// Grayscale returns a copy of m with every pixel replaced by its luma.
func (m *Image) Grayscale() *Image {
	out := New(m.rows, m.cols)
	for i, p := range m.pix {
		out.pix[i] = Gray(p.Y)
	}
	out.Format = "P2"
	return out
}

// Lumas returns a copy of the luma channel in row-major order.
func (m *Image) Lumas() []float64 {
	out := make([]float64, len(m.pix))
	for i, p := range m.pix {
		out[i] = p.Y
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
