package termrender

import (
	"bufio"
	"io"

	"github.com/Fepozopo/edgeterm/pkg/effects"
	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// brailleBase is U+2800, the blank 8-dot braille pattern.
const brailleBase = 0x2800

// brailleDots maps the (row, col) position inside a 4×2 cell to its dot bit.
//
//	0 3
//	1 4
//	2 5
//	6 7
var brailleDots = [4][2]uint{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// Braille writes img as braille characters, each covering a 2×4 block of
// pixels, no wider than cols characters. The image is halved until it fits in
// 2*cols pixels and dithered to black and white; white pixels raise dots.
// Blocks cut off by the image border are padded with black. img is not modified.
func Braille(w io.Writer, img *raster.Image, cols int) error {
	small := effects.DownscaleToFit(img, cols*2)
	effects.Dither(small)

	bw := bufio.NewWriter(w)
	for r := 0; r < small.Rows(); r += 4 {
		for c := 0; c < small.Cols(); c += 2 {
			bw.WriteRune(rune(brailleBase + brailleCell(small, r, c)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func brailleCell(img *raster.Image, r, c int) int {
	code := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			if img.InBounds(r+i, c+j) && img.Luma(r+i, c+j) >= 1 {
				code |= 1 << brailleDots[i][j]
			}
		}
	}
	return code
}
