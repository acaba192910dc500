package hyperspace

import (
	"testing"
	"time"
)

func TestPhaseAt(t *testing.T) {
	tl := NewTimeline(DefaultConfig())
	tests := []struct {
		ms       int
		phase    Phase
		progress float64
	}{
		{0, PhaseDrift, 0},
		{600, PhaseDrift, 0.5},
		{1200, PhaseWarp, 0},
		{3350, PhaseWarp, 0.5},
		{5500, PhaseFlashFade, 0},
		{5900, PhaseFlashFade, 0.5},
		{6300, PhaseDone, 1},
		{9000, PhaseDone, 1},
	}
	for _, tt := range tests {
		phase, p := tl.PhaseAt(time.Duration(tt.ms) * time.Millisecond)
		if phase != tt.phase {
			t.Errorf("PhaseAt(%dms) phase = %v, want %v", tt.ms, phase, tt.phase)
		}
		assertNear(t, "progress", p, tt.progress)
	}
}

func TestPhaseProgressInUnitInterval(t *testing.T) {
	tl := NewTimeline(DefaultConfig())
	for ms := 0; ms <= 7000; ms += 7 {
		_, p := tl.PhaseAt(time.Duration(ms) * time.Millisecond)
		if p < 0 || p > 1 {
			t.Fatalf("progress at %dms = %v", ms, p)
		}
	}
}

func TestWarpAndFadeProgress(t *testing.T) {
	tl := NewTimeline(DefaultConfig())
	assertNear(t, "warp before", tl.WarpProgress(0), 0)
	assertNear(t, "warp at end", tl.WarpProgress(5500*time.Millisecond), 1)
	assertNear(t, "warp after", tl.WarpProgress(6000*time.Millisecond), 1)
	assertNear(t, "fade at start", tl.FadeProgress(5500*time.Millisecond), 0)
	assertNear(t, "fade at entrance", tl.FadeProgress(5820*time.Millisecond), 0.4)
	assertNear(t, "fade at end", tl.FadeProgress(6300*time.Millisecond), 1)
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseDrift:     "drift",
		PhaseWarp:      "warp",
		PhaseFlashFade: "flash-fade",
		PhaseDone:      "done",
		Phase(99):      "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
