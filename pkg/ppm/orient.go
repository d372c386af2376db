package ppm

import (
	"encoding/binary"
	"errors"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

var errNoOrientation = errors.New("ppm: no exif orientation")

// AutoOrient applies an EXIF orientation (1..8) to img. Orientation 1 and
// unknown values return img unchanged.
func AutoOrient(img *raster.Image, orientation int) *raster.Image {
	switch orientation {
	case 2:
		return img.FlipHorizontal()
	case 3:
		return img.Rotate180()
	case 4:
		return img.FlipVertical()
	case 5:
		// transpose
		return img.RotateCW().FlipHorizontal()
	case 6:
		return img.RotateCW()
	case 7:
		// transverse
		return img.RotateCCW().FlipHorizontal()
	case 8:
		return img.RotateCCW()
	default:
		return img
	}
}

// exifStart scans JPEG segments for an APP1 Exif block and returns the offset
// of its TIFF header.
func exifStart(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return -1, errNoOrientation
	}
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, errNoOrientation
}

// jpegOrientation returns the orientation tag (0x0112) of IFD0 in JPEG bytes.
func jpegOrientation(data []byte) (int, error) {
	start, err := exifStart(data)
	if err != nil {
		return 0, err
	}
	if start+8 > len(data) {
		return 0, errNoOrientation
	}
	var order binary.ByteOrder
	switch string(data[start : start+2]) {
	case "MM":
		order = binary.BigEndian
	case "II":
		order = binary.LittleEndian
	default:
		return 0, errNoOrientation
	}
	if order.Uint16(data[start+2:start+4]) != 0x002A {
		return 0, errNoOrientation
	}
	ifd := start + int(order.Uint32(data[start+4:start+8]))
	if ifd+2 > len(data) || ifd <= start {
		return 0, errNoOrientation
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		typ := order.Uint16(data[ent+2 : ent+4])
		// SHORT, value stored inline
		if tag == 0x0112 && typ == 3 {
			o := int(order.Uint16(data[ent+8 : ent+10]))
			if o >= 1 && o <= 8 {
				return o, nil
			}
		}
	}
	return 0, errNoOrientation
}
