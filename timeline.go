package hyperspace

import "time"

// Phase is a state of the intro timeline.
type Phase uint8

const (
	PhaseDrift     Phase = iota // slow radial drift, full-size portal
	PhaseWarp                   // accelerating streaks, shrinking portal
	PhaseFlashFade              // white flash and surface fade-out
	PhaseDone                   // terminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDrift:
		return "drift"
	case PhaseWarp:
		return "warp"
	case PhaseFlashFade:
		return "flash-fade"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Timeline maps elapsed time to a phase. It holds only thresholds and never
// reads the clock.
type Timeline struct {
	DriftEnd time.Duration
	WarpEnd  time.Duration
	FlashEnd time.Duration
	FadeEnd  time.Duration
}

// NewTimeline copies the thresholds out of cfg.
func NewTimeline(cfg Config) Timeline {
	return Timeline{
		DriftEnd: cfg.DriftEnd,
		WarpEnd:  cfg.WarpEnd,
		FlashEnd: cfg.FlashEnd,
		FadeEnd:  cfg.FadeEnd,
	}
}

// PhaseAt returns the phase for elapsed and its local progress in [0, 1).
// Drift progress is elapsed/DriftEnd, warp progress runs from DriftEnd to
// WarpEnd, and flash-fade progress is the fade progress from WarpEnd to
// FadeEnd. Done reports progress 1.
func (tl Timeline) PhaseAt(elapsed time.Duration) (Phase, float64) {
	switch {
	case elapsed < tl.DriftEnd:
		return PhaseDrift, tl.ratio(elapsed, 0, tl.DriftEnd)
	case elapsed < tl.WarpEnd:
		return PhaseWarp, tl.ratio(elapsed, tl.DriftEnd, tl.WarpEnd)
	case elapsed < tl.FadeEnd:
		return PhaseFlashFade, tl.ratio(elapsed, tl.WarpEnd, tl.FadeEnd)
	default:
		return PhaseDone, 1
	}
}

// WarpProgress returns the warp progress for elapsed, held at 0 before the
// warp and at 1 after it.
func (tl Timeline) WarpProgress(elapsed time.Duration) float64 {
	return tl.ratio(elapsed, tl.DriftEnd, tl.WarpEnd)
}

// FadeProgress returns the fade progress for elapsed in [0, 1].
func (tl Timeline) FadeProgress(elapsed time.Duration) float64 {
	return tl.ratio(elapsed, tl.WarpEnd, tl.FadeEnd)
}

func (tl Timeline) ratio(v, from, to time.Duration) float64 {
	return Ratio(float64(v), float64(from), float64(to))
}
