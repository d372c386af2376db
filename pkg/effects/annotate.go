package effects

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// LabelHeight is the height of the caption strip Montage puts above each image.
const LabelHeight = 16

// TextWidth returns the width in pixels of text in the built-in 7x13 font.
func TextWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

// Annotate returns a copy of img with text drawn in the built-in 7x13 font,
// baseline at row and starting at col, in gray level luma. Pixels outside
// the glyphs keep their exact values.
func Annotate(img *raster.Image, text string, row, col int, luma float64) *raster.Image {
	out := img.Clone()
	mask := image.NewAlpha(image.Rect(0, 0, img.Cols(), img.Rows()))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(col, row),
	}
	d.DrawString(text)

	ink := raster.Gray(clamp01(luma))
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			if mask.AlphaAt(c, r).A >= 0x80 {
				out.Set(r, c, ink)
			}
		}
	}
	return out
}

// Montage lays images side by side, gap pixels apart, each under a strip
// of LabelHeight rows holding its label in white. Missing labels are blank.
func Montage(images []*raster.Image, labels []string, gap int) *raster.Image {
	if gap < 0 {
		gap = 0
	}
	rows, cols := 0, 0
	for i, img := range images {
		rows = max(rows, img.Rows())
		cols += img.Cols()
		if i > 0 {
			cols += gap
		}
	}
	sheet := raster.New(rows+LabelHeight, cols)
	x := 0
	for i, img := range images {
		for r := 0; r < img.Rows(); r++ {
			for c := 0; c < img.Cols(); c++ {
				sheet.Set(LabelHeight+r, x+c, img.At(r, c))
			}
		}
		if i < len(labels) && labels[i] != "" {
			sheet = Annotate(sheet, labels[i], LabelHeight-3, x+1, 1)
		}
		x += img.Cols() + gap
	}
	if sheet.IsGray() {
		sheet.Format = "P2"
	} else {
		sheet.Format = "P3"
	}
	return sheet
}
