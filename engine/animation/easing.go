package animation

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Easing maps linear progress in [0, 1] to eased progress. Easings must return 0 at 0 and 1 at 1.
type Easing func(p float32) float32

// Linear is the identity easing.
func Linear(p float32) float32 {
	return p
}

// QuadIn accelerates from zero velocity.
func QuadIn(p float32) float32 {
	return p * p
}

// QuadOut decelerates to zero velocity.
func QuadOut(p float32) float32 {
	return 1 - (1-p)*(1-p)
}

// QuadInOut accelerates until halfway, then decelerates.
func QuadInOut(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - 2*(1-p)*(1-p)
}

// CubicInOut is the cubic variant of QuadInOut.
func CubicInOut(p float32) float32 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := 1 - p
	return 1 - 4*q*q*q
}

// SineInOut follows half a cosine wave.
func SineInOut(p float32) float32 {
	return -(math32.Cos(math32.Pi*p) - 1) / 2
}

// SlowMo returns an easing that moves fast at both ends and nearly linearly through the middle.
// linearRatio is the fraction of the timeline spent in the linear section, power controls how
// slow that section is (0 = full speed, 1 = almost still).
//
// Parameters:
//   - linearRatio: share of the timeline that is linear, in [0, 1]
//   - power: strength of the slowdown, in [0, 1]
//
// Returns:
//   - Easing: the slow-motion easing
func SlowMo(linearRatio, power float32) Easing {
	linearRatio = math32.Min(1, math32.Max(0, linearRatio))
	power = math32.Min(1, math32.Max(0, power))
	p1 := (1 - linearRatio) / 2
	p3 := p1 + linearRatio

	return func(p float32) float32 {
		r := p + (0.5-p)*power
		switch {
		case p1 > 0 && p < p1:
			q := 1 - p/p1
			return r - q*q*q*q*r
		case p1 > 0 && p > p3:
			q := (p - p3) / p1
			return r + (p-r)*q*q*q*q
		default:
			return r
		}
	}
}

// DefaultEasing is the slow-motion curve used by camera and hover transitions.
var DefaultEasing = SlowMo(0.7, 0.7)

// ParseEasing resolves an easing by its configuration name.
// Accepted names: linear, quad-in, quad-out, quad-in-out, cubic-in-out, sine-in-out, slowmo.
//
// Parameters:
//   - name: the easing name (case-insensitive)
//
// Returns:
//   - Easing: the easing function
//   - error: error if the name is unknown
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "none":
		return Linear, nil
	case "quad-in", "power1.in":
		return QuadIn, nil
	case "quad-out", "power1.out":
		return QuadOut, nil
	case "quad-in-out", "power1.inout":
		return QuadInOut, nil
	case "cubic-in-out", "power2.inout":
		return CubicInOut, nil
	case "sine-in-out", "sine.inout":
		return SineInOut, nil
	case "slowmo", "":
		return DefaultEasing, nil
	default:
		return nil, fmt.Errorf("animation: unknown easing %q", name)
	}
}
