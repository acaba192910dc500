package hyperspace

import (
	"math"
	"math/rand/v2"
	"time"
)

// Star is one record in the star arena. Angle and DistanceFromCenter are
// fixed when the star is placed and never recomputed; the star flies along
// Angle for its whole life.
type Star struct {
	X, Y               float64
	Angle              float64
	DistanceFromCenter float64
	Speed              float64
	Opacity            float64
	Radius             float64

	// Visible and TailX/TailY are written by the warp step for Draw.
	Visible      bool
	TailX, TailY float64
}

var (
	starOpacity = Range{Min: 0.4, Max: 1.0}
	starRadius  = Range{Min: 1.0, Max: 1.5}
)

// StarField owns a fixed-size arena of stars. Stars are addressed by index
// only.
type StarField struct {
	stars    []Star
	rng      *rand.Rand
	overflow int
}

// NewStarField preallocates n stars. A nil rng is replaced by a clock-seeded
// PCG source.
func NewStarField(n int, rng *rand.Rand) *StarField {
	if n <= 0 {
		n = DefaultConfig().StarCount
	}
	if rng == nil {
		rng = newRand(0)
	}
	return &StarField{
		stars: make([]Star, n),
		rng:   rng,
	}
}

// newRand returns a PCG-backed generator. Zero seeds from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate places every star uniformly inside vp, redrawing a sample while
// it lands within minDistance of the center. After maxAttempts draws the
// last sample is kept whatever its distance, so placement always finishes.
func (f *StarField) Generate(vp Viewport, minDistance float64, maxAttempts int) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	f.overflow = 0
	for i := range f.stars {
		var x, y, dist float64
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			x = f.rng.Float64() * vp.Width
			y = f.rng.Float64() * vp.Height
			dist = vp.DistanceFromCenter(x, y)
			if dist >= minDistance {
				placed = true
				break
			}
		}
		if !placed {
			f.overflow++
		}

		f.stars[i] = Star{
			X:                  x,
			Y:                  y,
			Angle:              math.Atan2(y-vp.CenterY, x-vp.CenterX),
			DistanceFromCenter: dist,
			Opacity:            starOpacity.random(f.rng),
			Radius:             starRadius.random(f.rng),
			Visible:            true,
			TailX:              x,
			TailY:              y,
		}
	}
}

// Stars returns the arena. The slice is owned by the field; callers may
// mutate elements but must not resize it.
func (f *StarField) Stars() []Star {
	return f.stars
}

// Len returns the arena size.
func (f *StarField) Len() int {
	return len(f.stars)
}

// Overflow returns how many stars of the last Generate were kept after
// exhausting their sampling attempts.
func (f *StarField) Overflow() int {
	return f.overflow
}

// random returns a value in [Min, Max] drawn from rng.
func (r Range) random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
