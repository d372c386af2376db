// Package ppm reads and writes Netpbm pixmaps and bridges other raster file
// formats into raster.Image.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// MaxPixels bounds width*height of a decoded image.
const MaxPixels = 1 << 26

// tokenizer splits a Netpbm header or plain-text body into whitespace
// separated tokens, skipping '#' comments that run to the end of the line.
type tokenizer struct {
	r *bufio.Reader
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// next returns the following token. The single whitespace byte that ends the
// token is consumed, which leaves a binary body positioned at its first byte.
func (t *tokenizer) next() (string, error) {
	var tok []byte
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case b == '#':
			if _, err := t.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func (t *tokenizer) nextInt(what string) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidHeader, what)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: bad %s %q", ErrInvalidHeader, what, tok)
	}
	return v, nil
}

// Decode reads a Netpbm image. The plain formats P1 (bitmap), P2 (graymap)
// and P3 (pixmap) are the native ones; their binary forms P4, P5 and P6 are
// accepted too and decode to the matching plain format. Samples are divided
// by the header's max value, and a P1 "1" is black. Data past the last row
// is ignored. Headers describing more than MaxPixels pixels are rejected.
func Decode(r io.Reader) (*raster.Image, error) {
	t := &tokenizer{r: bufio.NewReader(r)}
	magic, err := t.next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing magic number", ErrUnknownFormat)
	}
	switch magic {
	case "P1", "P2", "P3", "P4", "P5", "P6":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, magic)
	}

	width, err := t.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := t.nextInt("height")
	if err != nil {
		return nil, err
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidHeader, width, height, MaxPixels)
	}
	maxVal := 1
	if magic != "P1" && magic != "P4" {
		if maxVal, err = t.nextInt("max value"); err != nil {
			return nil, err
		}
		if maxVal > 65535 {
			return nil, fmt.Errorf("%w: max value %d", ErrInvalidHeader, maxVal)
		}
	}

	img := raster.New(height, width)
	switch magic {
	case "P1":
		err = decodePlainBits(t, img)
		img.Format = "P1"
	case "P2", "P3":
		err = decodePlain(t, img, magic == "P3", float64(maxVal))
		img.Format = magic
	case "P4":
		err = decodeRawBits(t.r, img)
		img.Format = "P1"
	case "P5", "P6":
		err = decodeRaw(t.r, img, magic == "P6", maxVal)
		img.Format = "P2"
		if magic == "P6" {
			img.Format = "P3"
		}
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodePlainBits(t *tokenizer, img *raster.Image) error {
	n, total := 0, img.Rows()*img.Cols()
	for n < total {
		tok, err := t.next()
		if err != nil {
			return fmt.Errorf("%w: got %d of %d samples", ErrTruncated, n, total)
		}
		// bits may be packed without separators
		for i := 0; i < len(tok) && n < total; i++ {
			switch tok[i] {
			case '0':
				img.SetLuma(n/img.Cols(), n%img.Cols(), 1)
			case '1':
				img.SetLuma(n/img.Cols(), n%img.Cols(), 0)
			default:
				return fmt.Errorf("ppm: bad bitmap sample %q", tok)
			}
			n++
		}
	}
	return nil
}

func decodePlain(t *tokenizer, img *raster.Image, color bool, maxVal float64) error {
	per := 1
	if color {
		per = 3
	}
	var s [3]float64
	total := img.Rows() * img.Cols()
	for n := 0; n < total; n++ {
		for k := 0; k < per; k++ {
			tok, err := t.next()
			if err != nil {
				return fmt.Errorf("%w: got %d of %d pixels", ErrTruncated, n, total)
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("ppm: bad sample %q: %w", tok, err)
			}
			s[k] = v / maxVal
		}
		r, c := n/img.Cols(), n%img.Cols()
		if color {
			img.Set(r, c, raster.RGB(s[0], s[1], s[2]))
		} else {
			img.SetLuma(r, c, s[0])
		}
	}
	return nil
}

func decodeRawBits(r *bufio.Reader, img *raster.Image) error {
	row := make([]byte, (img.Cols()+7)/8)
	for y := 0; y < img.Rows(); y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrTruncated, y, err)
		}
		for x := 0; x < img.Cols(); x++ {
			bit := row[x/8] >> (7 - uint(x%8)) & 1
			img.SetLuma(y, x, float64(1-bit))
		}
	}
	return nil
}

func decodeRaw(r *bufio.Reader, img *raster.Image, color bool, maxVal int) error {
	per, width := 1, 1
	if color {
		per = 3
	}
	if maxVal > 255 {
		width = 2
	}
	buf := make([]byte, img.Cols()*per*width)
	var s [3]float64
	for y := 0; y < img.Rows(); y++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrTruncated, y, err)
		}
		for x := 0; x < img.Cols(); x++ {
			for k := 0; k < per; k++ {
				i := (x*per + k) * width
				v := int(buf[i])
				if width == 2 {
					v = v<<8 | int(buf[i+1])
				}
				s[k] = float64(v) / float64(maxVal)
			}
			if color {
				img.Set(y, x, raster.RGB(s[0], s[1], s[2]))
			} else {
				img.SetLuma(y, x, s[0])
			}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatFor returns the plain format img encodes as: its own Format when set,
// otherwise P2 for grayscale images and P3 for color ones.
func FormatFor(img *raster.Image) string {
	switch img.Format {
	case "P1", "P2", "P3":
		return img.Format
	}
	if img.IsGray() {
		return "P2"
	}
	return "P3"
}

// Encode writes img as a plain-text Netpbm file in the format chosen by
// FormatFor. Values are clamped to [0,1] and truncated onto the 0..255 scale;
// a bitmap writes 1 for black.
func Encode(w io.Writer, img *raster.Image) error {
	return EncodeAs(w, img, FormatFor(img))
}

// EncodeAs is Encode with an explicit format of "P1", "P2" or "P3".
func EncodeAs(w io.Writer, img *raster.Image, format string) error {
	bw := bufio.NewWriter(w)
	switch format {
	case "P1":
		fmt.Fprintf(bw, "P1\n%d %d\n", img.Cols(), img.Rows())
	case "P2", "P3":
		fmt.Fprintf(bw, "%s\n%d %d\n255\n", format, img.Cols(), img.Rows())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			p := img.At(r, c)
			switch format {
			case "P1":
				bw.WriteString(strconv.Itoa(int(1 - clamp01(p.Y))))
			case "P2":
				bw.WriteString(strconv.Itoa(int(clamp01(p.Y) * 255)))
			case "P3":
				if p.Gray {
					p = raster.Gray(p.Y)
				}
				fmt.Fprintf(bw, "%d %d %d", int(clamp01(p.R)*255), int(clamp01(p.G)*255), int(clamp01(p.B)*255))
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
