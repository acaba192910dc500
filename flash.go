package hyperspace

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FlashFade drives the two overlapping end effects: a short white flash
// starting at WarpEnd and the whole-surface fade from WarpEnd to FadeEnd.
// Both are linear ramps evaluated by absolute time, never by accumulated dt.
type FlashFade struct {
	flash     *gween.Tween
	fade      *gween.Tween
	flashSpan time.Duration
	threshold float64
	fired     bool
}

// NewFlashFade builds the ramps for cfg.
func NewFlashFade(cfg Config) *FlashFade {
	fadeSpan := cfg.FadeEnd - cfg.WarpEnd
	return &FlashFade{
		flash:     gween.New(float32(cfg.FlashPeakAlpha), 0, millis(cfg.FlashDuration()), ease.Linear),
		fade:      gween.New(1, 0, millis(fadeSpan), ease.Linear),
		flashSpan: cfg.FlashDuration(),
		threshold: cfg.EntranceThreshold,
	}
}

// FlashAlpha returns the white overlay alpha sinceWarp after WarpEnd. It is
// zero outside the flash window.
func (f *FlashFade) FlashAlpha(sinceWarp time.Duration) float64 {
	if sinceWarp < 0 || sinceWarp >= f.flashSpan {
		return 0
	}
	v, _ := f.flash.Set(millis(sinceWarp))
	return float64(v)
}

// Opacity returns the surface opacity sinceWarp after WarpEnd: 1 before the
// fade starts, 0 once it ends.
func (f *FlashFade) Opacity(sinceWarp time.Duration) float64 {
	v, _ := f.fade.Set(millis(sinceWarp))
	return clamp01(float64(v))
}

// CrossEntrance reports true exactly once: the first time fadeProgress
// exceeds the entrance threshold.
func (f *FlashFade) CrossEntrance(fadeProgress float64) bool {
	if f.fired || fadeProgress <= f.threshold {
		return false
	}
	f.fired = true
	return true
}

// EntranceFired reports whether the entrance signal has fired.
func (f *FlashFade) EntranceFired() bool {
	return f.fired
}

// drawFlash covers the whole surface with white at alpha.
func drawFlash(surf Surface, alpha float64) {
	if alpha <= 0 {
		return
	}
	w, h := surf.Size()
	surf.FillRect(Rect{Width: float64(w), Height: float64(h)}, ColorWhite.WithAlpha(alpha))
}

func millis(d time.Duration) float32 {
	return float32(float64(d) / float64(time.Millisecond))
}
