package common

import (
	"github.com/chewxy/math32"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo, hi: interval bounds (lo <= hi)
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpSlice interpolates each field of from toward to and writes the result into out.
// All three slices must have the same length.
//
// Parameters:
//   - out: destination slice
//   - from: start values
//   - to: end values
//   - t: interpolation factor
func LerpSlice(out, from, to []float32, t float32) {
	for i := range out {
		out[i] = Lerp(from[i], to[i], t)
	}
}
