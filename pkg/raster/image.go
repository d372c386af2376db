package raster

// Image is a rectangular, row-major grid of pixels. It owns its pixel data;
// Clone returns a deep copy.
type Image struct {
	rows, cols int
	pix        []Pixel
	// Format is the pixmap kind ("P1", "P2", "P3") the image prefers when encoded.
	Format string
}

// Coord identifies a pixel by row and column.
type Coord struct {
	Row, Col int
}

// New returns a black grayscale image with the given dimensions.
func New(rows, cols int) *Image {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	img := &Image{rows: rows, cols: cols, pix: make([]Pixel, rows*cols)}
	for i := range img.pix {
		img.pix[i].Gray = true
	}
	return img
}

// NewGray builds a grayscale image from luma rows.
func NewGray(values [][]float64) (*Image, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyImage
	}
	img := New(len(values), len(values[0]))
	for r, row := range values {
		if len(row) != img.cols {
			return nil, ErrNonRectangular
		}
		for c, y := range row {
			img.pix[r*img.cols+c] = Gray(y)
		}
	}
	return img, nil
}

// FromRows builds an image from rows of pixels. The rows are copied.
func FromRows(rows [][]Pixel) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyImage
	}
	img := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != img.cols {
			return nil, ErrNonRectangular
		}
		copy(img.pix[r*img.cols:(r+1)*img.cols], row)
	}
	return img, nil
}

// Rows returns the number of rows (image height).
func (m *Image) Rows() int { return m.rows }

// Cols returns the number of columns (image width).
func (m *Image) Cols() int { return m.cols }

// InBounds reports whether (r,c) addresses a pixel of m.
func (m *Image) InBounds(r, c int) bool {
	return r >= 0 && c >= 0 && r < m.rows && c < m.cols
}

// SameSize reports whether m and o have identical dimensions.
func (m *Image) SameSize(o *Image) bool {
	return m != nil && o != nil && m.rows == o.rows && m.cols == o.cols
}

// At returns the pixel at (r,c).
func (m *Image) At(r, c int) Pixel {
	return m.pix[r*m.cols+c]
}

// Set stores p at (r,c).
func (m *Image) Set(r, c int, p Pixel) {
	m.pix[r*m.cols+c] = p
}

// Luma returns the luma of the pixel at (r,c).
func (m *Image) Luma(r, c int) float64 {
	return m.pix[r*m.cols+c].Y
}

// SetLuma replaces the pixel at (r,c) with a grayscale pixel of luma y.
func (m *Image) SetLuma(r, c int, y float64) {
	m.pix[r*m.cols+c] = Gray(y)
}

// Row returns row r. The slice aliases the image storage.
func (m *Image) Row(r int) []Pixel {
	return m.pix[r*m.cols : (r+1)*m.cols]
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	if m == nil {
		return nil
	}
	out := &Image{rows: m.rows, cols: m.cols, pix: make([]Pixel, len(m.pix)), Format: m.Format}
	copy(out.pix, m.pix)
	return out
}

// IsGray reports whether every pixel is grayscale.
func (m *Image) IsGray() bool {
	for _, p := range m.pix {
		if !p.Gray {
			return false
		}
	}
	return true
}
