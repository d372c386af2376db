package raster

// Kernel is a small dense matrix of convolution coefficients, indexed [row][col].
type Kernel [][]float64

// Validate checks that k has odd side lengths and is either square or a single
// row/column (the separable special case). Every row must be the same length.
func (k Kernel) Validate() error {
	if len(k) == 0 || len(k[0]) == 0 {
		return ErrInvalidKernelSize
	}
	h, w := len(k), len(k[0])
	for _, row := range k {
		if len(row) != w {
			return ErrInvalidKernelSize
		}
	}
	if h%2 == 0 || w%2 == 0 {
		return ErrInvalidKernelSize
	}
	if h != w && h != 1 && w != 1 {
		return ErrInvalidKernelSize
	}
	return nil
}

// Transpose returns a new kernel with rows and columns swapped.
func (k Kernel) Transpose() Kernel {
	if len(k) == 0 {
		return Kernel{}
	}
	out := make(Kernel, len(k[0]))
	for j := range out {
		out[j] = make([]float64, len(k))
		for i := range k {
			out[j][i] = k[i][j]
		}
	}
	return out
}

// Sum returns the sum of all coefficients.
func (k Kernel) Sum() float64 {
	s := 0.0
	for _, row := range k {
		for _, v := range row {
			s += v
		}
	}
	return s
}
