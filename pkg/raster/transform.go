package raster

// FlipVertical returns m mirrored top to bottom.
func (m *Image) FlipVertical() *Image {
	out := m.Clone()
	for r := 0; r < m.rows; r++ {
		copy(out.Row(m.rows-1-r), m.Row(r))
	}
	return out
}

// FlipHorizontal returns m mirrored left to right.
func (m *Image) FlipHorizontal() *Image {
	out := m.Clone()
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.Set(r, m.cols-1-c, m.At(r, c))
		}
	}
	return out
}

// Rotate180 returns m turned half a revolution.
func (m *Image) Rotate180() *Image {
	out := m.Clone()
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.Set(m.rows-1-r, m.cols-1-c, m.At(r, c))
		}
	}
	return out
}

// RotateCW returns m rotated 90° clockwise; rows and columns swap.
func (m *Image) RotateCW() *Image {
	out := &Image{rows: m.cols, cols: m.rows, pix: make([]Pixel, len(m.pix)), Format: m.Format}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.Set(c, m.rows-1-r, m.At(r, c))
		}
	}
	return out
}

// RotateCCW returns m rotated 90° counter-clockwise; rows and columns swap.
func (m *Image) RotateCCW() *Image {
	out := &Image{rows: m.cols, cols: m.rows, pix: make([]Pixel, len(m.pix)), Format: m.Format}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.Set(m.cols-1-c, r, m.At(r, c))
		}
	}
	return out
}
