package hyperspace

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ease evaluates a gween easing curve over the unit interval. t is clamped
// to [0, 1] so callers can pass raw ratios.
func Ease(fn ease.TweenFunc, t float64) float64 {
	return float64(fn(float32(clamp01(t)), 0, 1, 1))
}

// EaseInOutCubic is 4t³ below the midpoint and 1 - (-2t+2)³/2 above it.
func EaseInOutCubic(t float64) float64 {
	return Ease(ease.InOutCubic, t)
}

// EaseInQuart is t⁴. It holds the warp acceleration near zero for most of
// the phase and spends the ramp at the end.
func EaseInQuart(t float64) float64 {
	return Ease(ease.InQuart, t)
}

// Ratio returns (v - from) / (to - from) clamped to [0, 1]. An empty span
// returns 1 once v has reached it.
func Ratio(v, from, to float64) float64 {
	if to <= from {
		if v >= to {
			return 1
		}
		return 0
	}
	return clamp01((v - from) / (to - from))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
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

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
