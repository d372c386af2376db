package termrender

import (
	"bufio"
	"io"
	"math"

	"github.com/Fepozopo/edgeterm/pkg/effects"
	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Ramp orders characters from darkest to brightest.
const Ramp = " .:-=+*#%@"

// ASCII writes img as text no wider than cols characters. The image is
// halved until it fits in cols/2 pixels, dithered to one level per ramp
// character, and every pixel is printed as two characters to offset the
// tall character cell. img is not modified.
func ASCII(w io.Writer, img *raster.Image, cols int) error {
	return ASCIIRamp(w, img, cols, Ramp)
}

// ASCIIRamp is ASCII with a caller-supplied ramp of at least two characters.
func ASCIIRamp(w io.Writer, img *raster.Image, cols int, ramp string) error {
	chars := []rune(ramp)
	if len(chars) < 2 {
		chars = []rune(Ramp)
	}
	small := effects.DownscaleToFit(img, cols/2)
	effects.DitherLevels(small, len(chars))

	bw := bufio.NewWriter(w)
	last := len(chars) - 1
	for r := 0; r < small.Rows(); r++ {
		for c := 0; c < small.Cols(); c++ {
			i := int(math.Round(small.Luma(r, c) * float64(last)))
			if i < 0 {
				i = 0
			} else if i > last {
				i = last
			}
			bw.WriteRune(chars[i])
			bw.WriteRune(chars[i])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
