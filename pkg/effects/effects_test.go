package effects

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

func flat(rows, cols int, v float64) *raster.Image {
	img := raster.New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			img.SetLuma(r, c, v)
		}
	}
	return img
}

func ramp(t *testing.T, rows, cols int) *raster.Image {
	t.Helper()
	img := raster.New(rows, cols)
	n := float64(rows*cols - 1)
	for i := 0; i < rows*cols; i++ {
		img.SetLuma(i/cols, i%cols, float64(i)/n)
	}
	return img
}

func TestDitherIsBinary(t *testing.T) {
	img := flat(8, 8, 0.25)
	Dither(img)
	assert.Equal(t, "P1", img.Format)
	ones := 0
	for _, v := range img.Lumas() {
		require.Contains(t, []float64{0, 1}, v)
		if v == 1 {
			ones++
		}
	}
	assert.InDelta(t, 16, ones, 6)

	black := flat(3, 3, 0)
	Dither(black)
	assert.Equal(t, make([]float64, 9), black.Lumas())

	white := flat(3, 3, 1)
	Dither(white)
	for _, v := range white.Lumas() {
		assert.Equal(t, 1.0, v)
	}
}

func TestPaletteLevelRoundsUp(t *testing.T) {
	assert.Equal(t, 0.0, PaletteLevel(0, 3))
	assert.Equal(t, 0.5, PaletteLevel(0.3, 3))
	assert.Equal(t, 0.5, PaletteLevel(0.5, 3))
	assert.Equal(t, 1.0, PaletteLevel(0.51, 3))
	assert.Equal(t, 1.0, PaletteLevel(1.4, 3))
	assert.Equal(t, 0.0, PaletteLevel(-0.2, 3))
	assert.InDelta(t, 3.0/9.0, PaletteLevel(3.0/9.0, 10), 1e-12)
	assert.Equal(t, 1.0, PaletteLevel(0.2, 1))
}

func TestDitherLevels(t *testing.T) {
	img := ramp(t, 6, 6)
	DitherLevels(img, 5)
	assert.Equal(t, "P2", img.Format)
	for _, v := range img.Lumas() {
		assert.Contains(t, []float64{0, 0.25, 0.5, 0.75, 1}, v)
	}

	mid := flat(4, 4, 0.5)
	DitherLevels(mid, 3)
	for _, v := range mid.Lumas() {
		assert.Equal(t, 0.5, v)
	}
}

func TestStochasticDither(t *testing.T) {
	src := flat(4, 4, 0)
	src.SetLuma(0, 0, 1)
	out := StochasticDither(src, NewRand(7))
	assert.Equal(t, "P1", out.Format)
	assert.Equal(t, 1.0, out.Luma(0, 0))
	for i, v := range out.Lumas()[1:] {
		assert.Equal(t, 0.0, v, "pixel %d", i+1)
	}
	// input untouched
	assert.Equal(t, "", src.Format)

	a := StochasticDither(flat(5, 5, 0.5), NewRand(3))
	b := StochasticDither(flat(5, 5, 0.5), NewRand(3))
	assert.Equal(t, a.Lumas(), b.Lumas())
}

func TestDownscale(t *testing.T) {
	img, err := raster.NewGray([][]float64{
		{0, 1, 0.5, 0.5, 9},
		{1, 0, 0.5, 0.5, 9},
		{0.2, 0.2, 0, 0, 9},
		{0.2, 0.2, 0, 1, 9},
	})
	require.NoError(t, err)
	img.Format = "P2"
	out := Downscale(img)
	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, 2, out.Cols())
	assert.Equal(t, "P2", out.Format)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.2, 0.25}, out.Lumas(), 1e-12)
	assert.True(t, out.IsGray())

	color, err := raster.FromRows([][]raster.Pixel{
		{raster.RGB(1, 0, 0), raster.Gray(0)},
		{raster.RGB(1, 0, 0), raster.Gray(0)},
	})
	require.NoError(t, err)
	p := Downscale(color).At(0, 0)
	assert.False(t, p.Gray)
	assert.InDelta(t, 0.5, p.R, 1e-12)
	assert.InDelta(t, 0.0, p.G, 1e-12)

	assert.Equal(t, 0, Downscale(raster.New(1, 7)).Rows())
}

func TestDownscaleToFit(t *testing.T) {
	img := raster.New(40, 100)
	out := DownscaleToFit(img, 30)
	assert.Equal(t, 25, out.Cols())
	assert.Equal(t, 10, out.Rows())

	same := DownscaleToFit(img, 200)
	assert.Equal(t, 100, same.Cols())
	assert.NotSame(t, img, same)
}

func TestPixelSort(t *testing.T) {
	img, err := raster.NewGray([][]float64{
		{0.9, 0.1, 0.5, 0.3},
		{0.9, 0.1, 0.5, 0.3},
	})
	require.NoError(t, err)
	edges, err := raster.NewGray([][]float64{
		{0, 0, 0, 0},
		{0, 0, 1, 1},
	})
	require.NoError(t, err)
	require.NoError(t, PixelSort(img, edges))
	assert.Equal(t, []float64{0.1, 0.3, 0.5, 0.9, 0.1, 0.9, 0.3, 0.5}, img.Lumas())

	assert.ErrorIs(t, PixelSort(img, raster.New(2, 3)), ErrDimensionMismatch)
}

func TestPixelSortKeepsPixelsInRow(t *testing.T) {
	img := ramp(t, 3, 8)
	Jitter(img, 3, NewRand(11))
	before := make([][]float64, img.Rows())
	for r := range before {
		for _, p := range img.Row(r) {
			before[r] = append(before[r], p.Y)
		}
		sort.Float64s(before[r])
	}
	edges := raster.New(3, 8)
	edges.SetLuma(1, 4, 1)
	require.NoError(t, PixelSort(img, edges))
	for r := range before {
		var after []float64
		for _, p := range img.Row(r) {
			after = append(after, p.Y)
		}
		sort.Float64s(after)
		assert.Equal(t, before[r], after)
	}
}

func TestJitter(t *testing.T) {
	src := ramp(t, 7, 9)
	want := src.Lumas()

	a := src.Clone()
	Jitter(a, 4, NewRand(5))
	b := src.Clone()
	Jitter(b, 4, NewRand(5))
	assert.Equal(t, a.Lumas(), b.Lumas())
	assert.NotEqual(t, want, a.Lumas())

	got := a.Lumas()
	sort.Float64s(got)
	assert.Equal(t, want, got)

	c := src.Clone()
	Jitter(c, 0, NewRand(5))
	assert.Equal(t, want, c.Lumas())
}

func TestPosterize(t *testing.T) {
	img, err := raster.NewGray([][]float64{{0.2, 0.3, 0.8, 1.2}})
	require.NoError(t, err)
	out := Posterize(img, 3)
	assert.Equal(t, []float64{0, 0.5, 1, 1}, out.Lumas())
	assert.Equal(t, 0.2, img.Luma(0, 0))
	assert.Equal(t, img.Lumas(), Posterize(img, 1).Lumas())

	color, err := raster.FromRows([][]raster.Pixel{{raster.RGB(0.1, 0.6, 0.9)}})
	require.NoError(t, err)
	p := Posterize(color, 2).At(0, 0)
	assert.Equal(t, 0.0, p.R)
	assert.Equal(t, 1.0, p.G)
	assert.Equal(t, 1.0, p.B)
}

func TestAddNoise(t *testing.T) {
	src := flat(6, 6, 0.5)
	same, err := AddNoise(src, "gaussian", 0, NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, src.Lumas(), same.Lumas())

	for _, kind := range []string{"gaussian", "UNIFORM"} {
		a, err := AddNoise(src, kind, 0.8, NewRand(9))
		require.NoError(t, err)
		b, err := AddNoise(src, kind, 0.8, NewRand(9))
		require.NoError(t, err)
		assert.Equal(t, a.Lumas(), b.Lumas())
		assert.NotEqual(t, src.Lumas(), a.Lumas())
		for _, v := range a.Lumas() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	_, err = AddNoise(src, "poisson", 1, NewRand(1))
	assert.Error(t, err)
}

func TestAnnotateDrawsInsideGlyphBox(t *testing.T) {
	img := flat(20, 40, 0.25)
	img.Format = "P2"
	out := Annotate(img, "A", 13, 1, 1)

	lit := 0
	for r := 0; r < out.Rows(); r++ {
		for c := 0; c < out.Cols(); c++ {
			switch out.Luma(r, c) {
			case 1:
				lit++
				assert.True(t, r < 16 && c >= 1 && c < 8, "ink outside glyph at %d,%d", r, c)
			default:
				assert.Equal(t, 0.25, out.Luma(r, c))
			}
		}
	}
	assert.Greater(t, lit, 5)
	assert.Equal(t, "P2", out.Format)
	for _, v := range img.Lumas() {
		require.Equal(t, 0.25, v)
	}
	assert.Equal(t, 14, TextWidth("AB"))
}

func TestMontage(t *testing.T) {
	a := flat(4, 8, 0.5)
	b := flat(6, 3, 0.75)
	sheet := Montage([]*raster.Image{a, b}, []string{"a"}, 2)

	assert.Equal(t, 6+LabelHeight, sheet.Rows())
	assert.Equal(t, 13, sheet.Cols())
	assert.Equal(t, 0.5, sheet.Luma(LabelHeight, 0))
	assert.Equal(t, 0.0, sheet.Luma(LabelHeight, 8))
	assert.Equal(t, 0.75, sheet.Luma(LabelHeight+5, 10))
	assert.Equal(t, 0.0, sheet.Luma(LabelHeight+5, 4))
	assert.Equal(t, "P2", sheet.Format)

	var inked bool
	for r := 0; r < LabelHeight; r++ {
		for c := 0; c < 8; c++ {
			inked = inked || sheet.Luma(r, c) == 1
		}
		for c := 8; c < 13; c++ {
			assert.Equal(t, 0.0, sheet.Luma(r, c))
		}
	}
	assert.True(t, inked, "label missing")
}
