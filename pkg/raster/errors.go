package raster

import "errors"

var (
	// ErrInvalidKernelSize indicates a kernel whose sides are not odd, or a
	// two-dimensional kernel that is not square.
	ErrInvalidKernelSize = errors.New("raster: kernel must be square with odd side length")
	// ErrDimensionMismatch indicates two images of differing size passed to a paired operation.
	ErrDimensionMismatch = errors.New("raster: image dimensions do not match")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrEmptyImage indicates an image with no rows or no columns.
	ErrEmptyImage = errors.New("raster: image must have at least one row and one column")
)
