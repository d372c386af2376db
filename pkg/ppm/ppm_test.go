package ppm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

func TestDecodeGraymapWithComments(t *testing.T) {
	src := "P2\n# made by hand\n3 2 # width height\n255\n0 51 102\n# mid-body comment\n153 204\n255\n"
	img, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Rows())
	assert.Equal(t, 3, img.Cols())
	assert.Equal(t, "P2", img.Format)
	assert.InDeltaSlice(t, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, img.Lumas(), 1e-12)
	assert.True(t, img.IsGray())
}

func TestDecodeBitmap(t *testing.T) {
	for _, src := range []string{
		"P1\n4 2\n1 0 1 0\n0 0 1 1\n",
		"P1 4 2 1010 0011",
		"P1\n4 2\n10100011\n",
	} {
		img, err := Decode(strings.NewReader(src))
		require.NoError(t, err, src)
		assert.Equal(t, "P1", img.Format)
		assert.Equal(t, []float64{0, 1, 0, 1, 1, 1, 0, 0}, img.Lumas(), src)
	}
}

func TestDecodePixmap(t *testing.T) {
	img, err := Decode(strings.NewReader("P3 2 1 10\n10 0 0  0 5 10\n"))
	require.NoError(t, err)
	assert.Equal(t, "P3", img.Format)
	p := img.At(0, 0)
	assert.False(t, p.Gray)
	assert.Equal(t, 1.0, p.R)
	assert.InDelta(t, 0.299, p.Y, 1e-12)
	q := img.At(0, 1)
	assert.InDelta(t, 0.5, q.G, 1e-12)
	assert.InDelta(t, 1.0, q.B, 1e-12)
}

func TestDecodeIgnoresTrailingData(t *testing.T) {
	img, err := Decode(strings.NewReader("P2 2 1 255 0 255 17 18 19"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, img.Lumas())
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{"", ErrUnknownFormat},
		{"P7\n1 1\n255\n0\n", ErrUnknownFormat},
		{"GIF89a", ErrUnknownFormat},
		{"P2\n3 two\n255\n", ErrInvalidHeader},
		{"P2\n0 1\n255\n", ErrInvalidHeader},
		{"P2\n1 1\n70000\n0\n", ErrInvalidHeader},
		{"P2\n2147483648 2147483648\n255\n0\n", ErrInvalidHeader},
		{"P5\n9223372036854775807 3\n255\n", ErrInvalidHeader},
		{"P1\n8193 8193\n0\n", ErrInvalidHeader},
		{"P2\n2 2\n255\n0 1 2\n", ErrTruncated},
		{"P3\n1 1\n255\n0 1\n", ErrTruncated},
		{"P1\n3 1\n01\n", ErrTruncated},
		{"P5\n2 2\n255\n\x00\x01", ErrTruncated},
	}
	for _, tc := range cases {
		var err error
		require.NotPanics(t, func() { _, err = Decode(strings.NewReader(tc.src)) }, "%q", tc.src)
		assert.ErrorIs(t, err, tc.want, "%q", tc.src)
	}
}

func TestDecodeBinary(t *testing.T) {
	img, err := Decode(strings.NewReader("P5\n3 1\n255\n\x00\x80\xff"))
	require.NoError(t, err)
	assert.Equal(t, "P2", img.Format)
	assert.InDeltaSlice(t, []float64{0, 128.0 / 255, 1}, img.Lumas(), 1e-12)

	img, err = Decode(strings.NewReader("P5 1 1 65535\n\xff\xff"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, img.Luma(0, 0))

	img, err = Decode(strings.NewReader("P6\n1 1\n255\n\xff\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, "P3", img.Format)
	assert.Equal(t, 1.0, img.At(0, 0).R)

	// 10 columns pack into two bytes per row
	img, err = Decode(strings.NewReader("P4\n10 1\n\xa0\x40"))
	require.NoError(t, err)
	assert.Equal(t, "P1", img.Format)
	assert.Equal(t, []float64{0, 1, 0, 1, 1, 1, 1, 1, 1, 0}, img.Lumas())
}

func TestEncodeFormats(t *testing.T) {
	img, err := raster.NewGray([][]float64{{0, 0.5, 1}, {1.5, -0.2, 0.25}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	assert.Equal(t, "P2\n3 2\n255\n0 127 255\n255 0 63\n", buf.String())

	buf.Reset()
	img.Format = "P1"
	require.NoError(t, Encode(&buf, img))
	assert.Equal(t, "P1\n3 2\n1 0 0\n0 1 0\n", buf.String())

	buf.Reset()
	img.Format = "P3"
	require.NoError(t, Encode(&buf, img))
	assert.Equal(t, "P3\n3 2\n255\n0 0 0 127 127 127 255 255 255\n255 255 255 0 0 0 63 63 63\n", buf.String())

	assert.ErrorIs(t, EncodeAs(&buf, img, "P9"), ErrUnknownFormat)
}

func TestFormatFor(t *testing.T) {
	img, err := raster.FromRows([][]raster.Pixel{{raster.RGB(1, 0, 0)}})
	require.NoError(t, err)
	assert.Equal(t, "P3", FormatFor(img))
	assert.Equal(t, "P2", FormatFor(raster.New(1, 1)))
	img.Format = "P1"
	assert.Equal(t, "P1", FormatFor(img))
}

func TestRoundTrip(t *testing.T) {
	srcs := []string{
		"P1\n3 2\n1 0 1\n0 1 0\n",
		"P2\n3 2\n255\n0 17 34\n200 254 255\n",
		"P3\n2 1\n255\n1 2 3 250 251 252\n",
	}
	for _, src := range srcs {
		img, err := Decode(strings.NewReader(src))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, img))
		assert.Equal(t, src, buf.String())
	}
}
