package ppm

import "errors"

var (
	// ErrUnknownFormat indicates a magic number other than P1 through P6.
	ErrUnknownFormat = errors.New("ppm: unknown file type")
	// ErrTruncated indicates the pixel data ended before the header's dimensions were filled.
	ErrTruncated = errors.New("ppm: truncated pixel data")
	// ErrInvalidHeader indicates a malformed width, height or max value.
	ErrInvalidHeader = errors.New("ppm: invalid header")
)
