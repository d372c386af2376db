//go:build !unix

package termrender

func winsize(uintptr) (Size, bool) { return Size{}, false }
