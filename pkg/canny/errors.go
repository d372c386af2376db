package canny

import (
	"errors"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

var (
	// ErrDegenerateStatistics indicates a magnitude distribution whose weak or
	// strong group is empty. ComputeThresholds still returns usable fallback cutoffs.
	ErrDegenerateStatistics = errors.New("canny: degenerate magnitude statistics")

	// ErrInvalidKernelSize is re-exported from raster for callers of this package.
	ErrInvalidKernelSize = raster.ErrInvalidKernelSize
	// ErrDimensionMismatch is re-exported from raster for callers of this package.
	ErrDimensionMismatch = raster.ErrDimensionMismatch
)
