// Package termrender draws rasters as text: an ASCII brightness ramp or
// Unicode braille dots, sized to the terminal.
package termrender

import (
	"os"
	"strconv"
)

// Size is a terminal's dimensions in character cells.
type Size struct {
	Cols int
	Rows int
}

// DefaultSize is used when the terminal cannot be queried.
var DefaultSize = Size{Cols: 80, Rows: 24}

// TerminalSize reports the size of the terminal on fd. When fd is not a
// terminal it falls back to the COLUMNS and LINES environment variables, then
// to DefaultSize.
func TerminalSize(fd uintptr) Size {
	if s, ok := winsize(fd); ok && s.Cols > 0 {
		return s
	}
	s := DefaultSize
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		s.Cols = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		s.Rows = v
	}
	return s
}

// StdoutSize is TerminalSize for standard output.
func StdoutSize() Size {
	return TerminalSize(os.Stdout.Fd())
}
