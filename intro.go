package hyperspace

import "time"

// Intro is the hyperspace intro: a star field that drifts, warps into a
// shrinking portal, flashes white and fades out. It plays once.
//
// The host calls Layout with the drawable size every frame, Update once per
// tick and Draw whenever it renders. The start time is captured on the first
// usable Layout, so the timeline never runs against an unmeasured viewport.
type Intro struct {
	cfg      Config
	timeline Timeline
	field    *StarField
	flash    *FlashFade
	vp       Viewport

	started      bool
	startTime    time.Time
	settleFrames int

	phase      Phase
	progress   float64
	warp       float64
	elapsed    time.Duration
	opacity    float64
	flashAlpha float64
	done       bool

	sink EventSink

	// OnEntrance is called once, when the fade passes the entrance
	// threshold, or at completion if no tick observed that crossing.
	OnEntrance func()
	// OnComplete is called once, when the intro reaches FadeEnd.
	OnComplete func()
}

// NewIntro creates an intro from cfg. Zero fields of cfg take their
// defaults; an invalid cfg is logged and replaced by DefaultConfig.
func NewIntro(cfg Config) *Intro {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Printf("intro: %v; using defaults", err)
		cfg = DefaultConfig()
	}
	return &Intro{
		cfg:      cfg,
		timeline: NewTimeline(cfg),
		field:    NewStarField(cfg.StarCount, newRand(cfg.Seed)),
		flash:    NewFlashFade(cfg),
		opacity:  1,
	}
}

// Config returns the effective config.
func (in *Intro) Config() Config {
	return in.cfg
}

// SetEventSink forwards lifecycle events to sink. Nil disables forwarding.
func (in *Intro) SetEventSink(sink EventSink) {
	in.sink = sink
}

// Layout reports the current drawable size. The first call with a nonzero
// size (or the MeasureDelayFrames-th, depending on Config.Measure) measures
// the viewport, places the stars and captures now as the start time. Later
// calls behave like Resize.
func (in *Intro) Layout(w, h int, now time.Time) {
	if w <= 0 || h <= 0 {
		return
	}
	if in.started {
		in.Resize(w, h)
		return
	}
	if in.cfg.Measure == MeasureAfterFrames {
		in.settleFrames++
		if in.settleFrames < in.cfg.MeasureDelayFrames {
			return
		}
	}
	in.start(w, h, now)
}

func (in *Intro) start(w, h int, now time.Time) {
	in.vp = NewViewport(w, h, in.cfg)
	in.field.Generate(in.vp, in.vp.MinStarDistance(in.cfg), in.cfg.MaxSampleAttempts)
	in.started = true
	in.startTime = now
	in.phase = PhaseDrift
	if n := in.field.Overflow(); n > 0 {
		logger.Printf("intro: %d of %d stars placed inside the exclusion radius", n, in.field.Len())
	}
	in.emit(IntroStarted)
}

// Resize recomputes the viewport-derived scalars. It is a no-op before the
// intro has started and for a zero size. The start time and star positions
// are kept unless Config.RegenerateOnResize is set.
func (in *Intro) Resize(w, h int) {
	if !in.started || in.done || w <= 0 || h <= 0 {
		return
	}
	vp := NewViewport(w, h, in.cfg)
	if vp == in.vp {
		return
	}
	in.vp = vp
	if in.cfg.RegenerateOnResize {
		in.field.Generate(vp, vp.MinStarDistance(in.cfg), in.cfg.MaxSampleAttempts)
	}
}

// Update advances the intro to now. It does nothing before the start or
// after completion.
func (in *Intro) Update(now time.Time) {
	if !in.started || in.done {
		return
	}
	elapsed := now.Sub(in.startTime)
	phase, progress := in.timeline.PhaseAt(elapsed)

	changed := phase != in.phase
	in.phase, in.progress, in.elapsed = phase, progress, elapsed
	if changed {
		logger.Printf("intro: %s at %v", phase, elapsed)
		in.emit(IntroPhaseChanged)
	}

	stars := in.field.Stars()
	switch phase {
	case PhaseDrift:
		in.warp = 0
		driftStep(stars, progress, in.cfg.DriftSpeed)
	case PhaseWarp:
		in.warp = progress
		warpStep(stars, in.vp, progress)
	case PhaseFlashFade:
		in.warp = 1
		warpStep(stars, in.vp, 1)
		since := elapsed - in.timeline.WarpEnd
		in.flashAlpha = in.flash.FlashAlpha(since)
		in.opacity = in.flash.Opacity(since)
		if in.flash.CrossEntrance(progress) {
			in.entrance()
		}
	case PhaseDone:
		in.finish()
	}
}

// Draw renders the current frame into surf. Every frame starts from opaque
// black. Nothing is drawn before the start or after completion.
func (in *Intro) Draw(surf Surface) {
	if !in.started || in.done {
		return
	}
	surf.Fill(ColorBlack)

	stars := in.field.Stars()
	switch in.phase {
	case PhaseDrift:
		drawDrift(surf, stars)
		drawPortal(surf, in.vp, in.PortalRadius(), in.cfg.HaloScale)
	case PhaseWarp:
		drawStreaks(surf, stars, in.warp)
		drawPortal(surf, in.vp, in.PortalRadius(), in.cfg.HaloScale)
	case PhaseFlashFade:
		drawStreaks(surf, stars, 1)
		drawFlash(surf, in.flashAlpha)
	}
}

// entrance fires the entrance signal. Callers guarantee it runs once.
func (in *Intro) entrance() {
	logger.Printf("intro: entrance at %v", in.elapsed)
	in.emit(IntroEntrance)
	if in.OnEntrance != nil {
		in.OnEntrance()
	}
}

// finish removes the surface and fires completion. Runs once.
func (in *Intro) finish() {
	in.done = true
	in.opacity = 0
	in.flashAlpha = 0
	if in.flash.CrossEntrance(1) {
		in.entrance()
	}
	logger.Printf("intro: complete at %v", in.elapsed)
	in.emit(IntroComplete)
	if in.OnComplete != nil {
		in.OnComplete()
	}
}

func (in *Intro) emit(t IntroEventType) {
	if in.sink == nil {
		return
	}
	in.sink.EmitEvent(IntroEvent{Type: t, Phase: in.phase, Elapsed: in.elapsed})
}

// Started reports whether the first measurement has been taken.
func (in *Intro) Started() bool {
	return in.started
}

// Done reports whether the intro has completed.
func (in *Intro) Done() bool {
	return in.done
}

// Visible reports whether the intro surface should be on screen.
func (in *Intro) Visible() bool {
	return in.started && !in.done
}

// Phase returns the phase of the last Update.
func (in *Intro) Phase() Phase {
	return in.phase
}

// Progress returns the local progress of the last Update's phase.
func (in *Intro) Progress() float64 {
	return in.progress
}

// Elapsed returns the elapsed time of the last Update.
func (in *Intro) Elapsed() time.Duration {
	return in.elapsed
}

// Opacity returns the whole-surface opacity the host composites with.
func (in *Intro) Opacity() float64 {
	return in.opacity
}

// FlashAlpha returns the white flash alpha of the last Update.
func (in *Intro) FlashAlpha() float64 {
	return in.flashAlpha
}

// PortalRadius returns the portal radius of the last Update.
func (in *Intro) PortalRadius() float64 {
	return PortalRadius(in.vp.PortalMaxRadius, in.phase, in.warp)
}

// Viewport returns the current viewport measurement.
func (in *Intro) Viewport() Viewport {
	return in.vp
}

// Stars returns the star arena.
func (in *Intro) Stars() []Star {
	return in.field.Stars()
}

// EntranceFired reports whether the entrance signal has fired.
func (in *Intro) EntranceFired() bool {
	return in.flash.EntranceFired()
}
