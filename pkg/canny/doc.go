// Package canny implements the Canny edge detector over raster images.
//
// The pipeline runs in five stages, each independently callable:
//
//  1. Smooth: 5-tap separable Gaussian (or the 5x5 1/159 kernel).
//  2. GradientMagnitudeAndDirection: Sobel derivatives, Euclidean magnitude
//     remapped from [0, √32] to [0, 1], and a direction map quantized to
//     0°, 45°, 90° and 135°.
//  3. SuppressNonMaxima: keeps ridge pixels that dominate their neighbors
//     along the gradient.
//  4. ComputeThresholds + Classify: weak and strong cutoffs taken from the
//     magnitude distribution, producing a map in {0, 0.5, 1}.
//  5. LinkHysteresis: promotes candidates reachable from strong seeds
//     through 8-connected paths and drops the rest, producing a map in {0, 1}.
//
// Detector wires the stages together and logs each one.
package canny
