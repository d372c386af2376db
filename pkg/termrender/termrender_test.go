package termrender

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

func TestASCIISmallImage(t *testing.T) {
	img, err := raster.NewGray([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ASCII(&buf, img, 80))
	assert.Equal(t, "  @@\n@@  \n", buf.String())
	// source untouched
	assert.Equal(t, []float64{0, 1, 1, 0}, img.Lumas())
}

func TestASCIIDownscalesToWidth(t *testing.T) {
	img := raster.New(4, 8)
	for r := 0; r < 4; r++ {
		for c := 4; c < 8; c++ {
			img.SetLuma(r, c, 1)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, ASCII(&buf, img, 4))
	assert.Equal(t, "  @@\n", buf.String())
}

func TestASCIIRampLevels(t *testing.T) {
	img, err := raster.NewGray([][]float64{{0, 0.5, 1}})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ASCIIRamp(&buf, img, 80, " o#"))
	assert.Equal(t, "  oo##\n", buf.String())
}

func TestBraillePatterns(t *testing.T) {
	cases := []struct {
		name  string
		white [][2]int
		want  rune
	}{
		{"blank", nil, 0x2800},
		{"top left", [][2]int{{0, 0}}, 0x2801},
		{"top right", [][2]int{{0, 1}}, 0x2808},
		{"bottom right", [][2]int{{3, 1}}, 0x2880},
		{"bottom left", [][2]int{{3, 0}}, 0x2840},
	}
	for _, tc := range cases {
		img := raster.New(4, 2)
		for _, p := range tc.white {
			img.SetLuma(p[0], p[1], 1)
		}
		var buf bytes.Buffer
		require.NoError(t, Braille(&buf, img, 80))
		assert.Equal(t, string(tc.want)+"\n", buf.String(), tc.name)
	}
}

func TestBraillePadsPartialCells(t *testing.T) {
	img := raster.New(5, 3)
	for r := 0; r < 5; r++ {
		for c := 0; c < 3; c++ {
			img.SetLuma(r, c, 1)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, Braille(&buf, img, 80))
	want := string([]rune{0x28FF, 0x2847}) + "\n" + string([]rune{0x2809, 0x2801}) + "\n"
	assert.Equal(t, want, buf.String())
}

func TestBrailleFitsColumns(t *testing.T) {
	img := raster.New(16, 64)
	var buf bytes.Buffer
	require.NoError(t, Braille(&buf, img, 8))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 8)
	}
}

func TestTerminalSizeFallback(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")
	assert.Equal(t, DefaultSize, TerminalSize(f.Fd()))

	t.Setenv("COLUMNS", "123")
	t.Setenv("LINES", "40")
	assert.Equal(t, Size{Cols: 123, Rows: 40}, TerminalSize(f.Fd()))

	t.Setenv("COLUMNS", "wide")
	assert.Equal(t, 80, TerminalSize(f.Fd()).Cols)
}
