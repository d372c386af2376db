package canny

import (
	"fmt"
	"strings"
)

// Smoothing selects the Gaussian approximation applied before differentiation.
// The two are numerically close but not bit-identical.
type Smoothing int

const (
	// SmoothSeparable applies a 1x5 kernel then its 5x1 transpose.
	SmoothSeparable Smoothing = iota
	// SmoothKernel159 applies the 5x5 integer kernel scaled by 1/159.
	SmoothKernel159
)

func (s Smoothing) String() string {
	if s == SmoothKernel159 {
		return "kernel159"
	}
	return "separable"
}

// ParseSmoothing accepts "separable" or "kernel159" (case-insensitive).
func ParseSmoothing(s string) (Smoothing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "separable":
		return SmoothSeparable, nil
	case "kernel159", "159":
		return SmoothKernel159, nil
	}
	return SmoothSeparable, fmt.Errorf("unknown smoothing %q", s)
}

// WeakMode selects how the weak cutoff is derived.
type WeakMode int

const (
	// WeakGroupMean uses the mean of the below-mean group.
	WeakGroupMean WeakMode = iota
	// WeakMidpoint uses the midpoint between the overall mean and the strong cutoff.
	WeakMidpoint
)

func (m WeakMode) String() string {
	if m == WeakMidpoint {
		return "midpoint"
	}
	return "groupmean"
}

// ParseWeakMode accepts "groupmean" or "midpoint" (case-insensitive).
func ParseWeakMode(s string) (WeakMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "groupmean", "group":
		return WeakGroupMean, nil
	case "midpoint", "mid":
		return WeakMidpoint, nil
	}
	return WeakGroupMean, fmt.Errorf("unknown weak threshold mode %q", s)
}

// DefaultIgnoreFloor excludes near-black magnitudes from threshold statistics.
const DefaultIgnoreFloor = 0.5 / 255.0

// Options configures a Detector.
type Options struct {
	Smoothing Smoothing
	// IgnoreFloor: magnitudes at or below this value are left out of the statistics.
	IgnoreFloor float64
	WeakMode    WeakMode
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Smoothing:   SmoothSeparable,
		IgnoreFloor: DefaultIgnoreFloor,
		WeakMode:    WeakGroupMean,
	}
}
