package canny

import "fmt"

// Direction is a gradient orientation quantized to one of four bins.
type Direction uint8

const (
	Dir0 Direction = iota
	Dir45
	Dir90
	Dir135
)

// Degrees returns the bin's angle.
func (d Direction) Degrees() int {
	switch d {
	case Dir45:
		return 45
	case Dir90:
		return 90
	case Dir135:
		return 135
	default:
		return 0
	}
}

func (d Direction) String() string {
	return fmt.Sprintf("%d°", d.Degrees())
}

// QuantizeAngle maps an angle in degrees, normalized to [0,360), onto a bin:
// [0,23)→0°, [23,68)→45°, [68,113)→90°, [113,156)→135°, [156,360)→0°.
func QuantizeAngle(deg float64) Direction {
	switch {
	case deg < 23:
		return Dir0
	case deg < 68:
		return Dir45
	case deg < 113:
		return Dir90
	case deg < 156:
		return Dir135
	default:
		return Dir0
	}
}

// DirectionMap holds one quantized direction per pixel, row-major.
type DirectionMap struct {
	rows, cols int
	dir        []Direction
}

// NewDirectionMap returns a map of the given size with every cell at 0°.
func NewDirectionMap(rows, cols int) *DirectionMap {
	return &DirectionMap{rows: rows, cols: cols, dir: make([]Direction, rows*cols)}
}

// Rows returns the number of rows.
func (d *DirectionMap) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *DirectionMap) Cols() int { return d.cols }

// At returns the direction at (r,c).
func (d *DirectionMap) At(r, c int) Direction { return d.dir[r*d.cols+c] }

// Set stores the direction at (r,c).
func (d *DirectionMap) Set(r, c int, v Direction) { d.dir[r*d.cols+c] = v }
