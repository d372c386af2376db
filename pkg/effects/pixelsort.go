package effects

import (
	"sort"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// PixelSort sorts each row of img in place, by ascending luma, within the
// segments delimited by the edge map: a segment ends wherever the edge value
// changes along the row, and the final segment runs through the last column.
// edges must have img's dimensions.
func PixelSort(img, edges *raster.Image) error {
	if !img.SameSize(edges) {
		return ErrDimensionMismatch
	}
	for r := 0; r < img.Rows(); r++ {
		row := img.Row(r)
		start := 0
		prev := 0.0
		for c := 0; c < img.Cols(); c++ {
			if e := edges.Luma(r, c); e != prev {
				sortByLuma(row[start:c])
				start = c
				prev = e
			}
		}
		sortByLuma(row[start:])
	}
	return nil
}

func sortByLuma(px []raster.Pixel) {
	sort.SliceStable(px, func(i, j int) bool { return px[i].Y < px[j].Y })
}
