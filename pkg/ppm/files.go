package ppm

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Open reads a Netpbm file from disk.
func Open(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Save writes img to path as a plain Netpbm file.
func Save(path string, img *raster.Image) error {
	return saveNetpbm(path, img, FormatFor(img))
}

func saveNetpbm(path string, img *raster.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeAs(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// isNetpbm reports whether b starts with a Netpbm magic number.
func isNetpbm(b []byte) bool {
	return len(b) >= 2 && b[0] == 'P' && b[1] >= '1' && b[1] <= '6'
}

// LoadAny reads an image in any supported format, sniffed from its content:
// Netpbm, PNG, JPEG, GIF, BMP, TIFF or WebP. JPEG EXIF orientation is applied.
// The second return value names the detected format.
func LoadAny(path string) (*raster.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if isNetpbm(b) {
		img, err := Decode(bytes.NewReader(b))
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return img, "netpbm", nil
	}
	src, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	img := raster.FromImage(src)
	if format == "jpeg" {
		if o, err := jpegOrientation(b); err == nil {
			img = AutoOrient(img, o)
		}
	}
	return img, format, nil
}

// SaveAny writes img in the format implied by the path's extension. Netpbm
// extensions force their kind (.pbm bitmap, .pgm graymap, .ppm pixmap) and
// .pnm keeps the image's own format. Unknown extensions write PNG.
func SaveAny(path string, img *raster.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pbm":
		return saveNetpbm(path, img, "P1")
	case ".pgm":
		return saveNetpbm(path, img, "P2")
	case ".ppm":
		return saveNetpbm(path, img, "P3")
	case ".pnm":
		return Save(path, img)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	src := image.Image(img.ToNRGBA())
	if img.IsGray() {
		src = img.ToGray()
	}
	switch ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, src, &jpeg.Options{Quality: 92})
	case ".gif":
		err = gif.Encode(f, src, nil)
	case ".bmp":
		err = bmp.Encode(f, src)
	case ".tif", ".tiff":
		err = tiff.Encode(f, src, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, src)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
