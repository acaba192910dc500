package hyperspace

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// assertNear32 compares values that went through gween's float32 math.
func assertNear32(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// drawOp is one call recorded by recordingSurface.
type drawOp struct {
	kind           string
	x0, y0, x1, y1 float64
	radius         float64
	width          float64
	rect           Rect
	color          Color
	gradient       *Gradient
}

// recordingSurface is a Surface that records draw calls instead of
// rendering them.
type recordingSurface struct {
	w, h int
	ops  []drawOp
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Fill(c Color) {
	s.ops = append(s.ops, drawOp{kind: "fill", color: c})
}

func (s *recordingSurface) FillRect(r Rect, c Color) {
	s.ops = append(s.ops, drawOp{kind: "rect", rect: r, color: c})
}

func (s *recordingSurface) FillCircle(cx, cy, radius float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "circle", x0: cx, y0: cy, radius: radius, color: c})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	s.ops = append(s.ops, drawOp{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, width: width, color: c})
}

func (s *recordingSurface) DrawRadialGradient(cx, cy, radius float64, g *Gradient) {
	s.ops = append(s.ops, drawOp{kind: "gradient", x0: cx, y0: cy, radius: radius, gradient: g})
}

func (s *recordingSurface) reset() { s.ops = s.ops[:0] }

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// testEpoch is an arbitrary fixed start time.
var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return testEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// seededConfig returns the default config with a fixed star seed.
func seededConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}
