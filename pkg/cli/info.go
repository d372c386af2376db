package cli

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// ImageInfo summarizes img on one line: format, dimensions and luma
// statistics. format names the container it was loaded from; for Netpbm
// input, or when empty, the image's own format is shown.
func ImageInfo(img *raster.Image, format string) string {
	if img == nil {
		return "no image"
	}
	if format == "" || format == "netpbm" {
		format = img.Format
	}
	if format == "" {
		format = "unknown"
	}
	kind := "color"
	if img.IsGray() {
		kind = "gray"
	}
	info := fmt.Sprintf("Format: %s, Width: %d, Height: %d, Type: %s", format, img.Cols(), img.Rows(), kind)

	y := img.Lumas()
	if len(y) == 0 {
		return info
	}
	mean, std := stat.Mean(y, nil), 0.0
	if len(y) > 1 {
		mean, std = stat.MeanStdDev(y, nil)
	}
	return fmt.Sprintf("%s, Luma: min %.3f max %.3f mean %.3f stddev %.3f",
		info, floats.Min(y), floats.Max(y), mean, std)
}
