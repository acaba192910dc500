package hyperspace

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		assertNear32(t, "EaseInOutCubic", EaseInOutCubic(tt.t), tt.want)
	}
}

func TestEaseInQuart(t *testing.T) {
	assertNear32(t, "EaseInQuart(0)", EaseInQuart(0), 0)
	assertNear32(t, "EaseInQuart(0.5)", EaseInQuart(0.5), 0.0625)
	assertNear32(t, "EaseInQuart(1)", EaseInQuart(1), 1)
}

func TestEaseClampsInput(t *testing.T) {
	assertNear32(t, "below", Ease(ease.Linear, -2), 0)
	assertNear32(t, "above", Ease(ease.Linear, 3), 1)
}

func TestRatio(t *testing.T) {
	assertNear(t, "mid", Ratio(5, 0, 10), 0.5)
	assertNear(t, "before", Ratio(-1, 0, 10), 0)
	assertNear(t, "after", Ratio(11, 0, 10), 1)
	assertNear(t, "empty span reached", Ratio(10, 10, 10), 1)
	assertNear(t, "empty span not reached", Ratio(9, 10, 10), 0)
}

func TestClamp(t *testing.T) {
	assertNear(t, "low", Clamp(-1, 0.3, 1.6), 0.3)
	assertNear(t, "high", Clamp(12.8, 0.3, 1.6), 1.6)
	assertNear(t, "inside", Clamp(1, 0.3, 1.6), 1)
}

func TestLerp(t *testing.T) {
	assertNear(t, "lerp(0,10,0)", lerp(0, 10, 0), 0)
	assertNear(t, "lerp(0,10,0.5)", lerp(0, 10, 0.5), 5)
	assertNear(t, "lerp(0,10,1)", lerp(0, 10, 1), 10)
}
