package hyperspace

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window and loop started by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int // ticks per second; zero uses 60. Star speeds are per tick.
	Resizable bool
	ShowFPS   bool
	Debug     bool
	// ScreenshotDir receives PNGs from Screenshot and the F12 key.
	ScreenshotDir string
	// ExitAfterScript ends Run once an attached TestRunner has finished.
	ExitAfterScript bool
}

// Host is the ebiten.Game that drives an Intro and any number of Reveals.
// Page content is drawn by the DrawFunc, under the reveal overlays; the
// intro surface is composited on top of everything with its fade opacity.
//
// For full control, embed Host's Update, Draw and Layout in your own
// ebiten.Game instead of calling Run.
type Host struct {
	// ClearColor fills the screen before the DrawFunc runs.
	ClearColor Color
	// ScreenshotDir receives queued screenshots. Defaults to "screenshots".
	ScreenshotDir string

	intro        *Intro
	introSurface *ImageSurface
	reveals      []revealBinding

	updateFn func() error
	drawFn   func(screen *ebiten.Image)
	clock    func() time.Time

	width, height   int
	logicalW        int
	logicalH        int
	tps             int
	debug           bool
	fps             *fpsWidget
	exitAfterScript bool

	touchIDs    []ebiten.TouchID
	touches     []touchPoint
	injectQueue []syntheticPointerEvent
	scripted    bool
	lastFrame   inputFrame

	testRunner      *TestRunner
	screenshotQueue []string
	stats           debugStats
}

type revealBinding struct {
	reveal  *Reveal
	tracker *PointerTracker
	layout  func(w, h int) Rect
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{
		ScreenshotDir: "screenshots",
		clock:         time.Now,
		tps:           ebiten.DefaultTPS,
	}
}

// SetIntro installs the intro. It is measured on the next Update.
func (h *Host) SetIntro(in *Intro) {
	h.intro = in
}

// Intro returns the installed intro, or nil.
func (h *Host) Intro() *Intro {
	return h.intro
}

// AddReveal installs a reveal and a pointer tracker feeding it. The caller
// keeps the reveal's bounds current with SetBounds.
func (h *Host) AddReveal(r *Reveal) {
	h.reveals = append(h.reveals, revealBinding{reveal: r, tracker: NewPointerTracker(r)})
}

// AddRevealLayout installs a reveal whose container rectangle is computed by
// layout from the screen size. The host calls layout on every Update, so a
// window resize reaches the reveal through its debounced remeasure.
func (h *Host) AddRevealLayout(r *Reveal, layout func(w, h int) Rect) {
	h.reveals = append(h.reveals, revealBinding{reveal: r, tracker: NewPointerTracker(r), layout: layout})
}

// Reveals returns the installed reveals.
func (h *Host) Reveals() []*Reveal {
	out := make([]*Reveal, len(h.reveals))
	for i, b := range h.reveals {
		out[i] = b.reveal
	}
	return out
}

// SetUpdateFunc sets a callback run at the end of every Update. A non-nil
// error ends the game loop.
func (h *Host) SetUpdateFunc(fn func() error) {
	h.updateFn = fn
}

// SetDrawFunc sets the page drawing callback, run after the clear and
// before the reveal overlays.
func (h *Host) SetDrawFunc(fn func(screen *ebiten.Image)) {
	h.drawFn = fn
}

// SetClock replaces time.Now as the source of frame timestamps.
func (h *Host) SetClock(fn func() time.Time) {
	h.clock = fn
}

// SetLogicalSize pins the screen size reported by Layout. Zero restores the
// window size.
func (h *Host) SetLogicalSize(w, hgt int) {
	h.logicalW, h.logicalH = w, hgt
}

// Size returns the current screen size.
func (h *Host) Size() (int, int) {
	return h.width, h.height
}

// SetDebugMode enables per-frame timing stats and routes diagnostics to
// stderr.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
	SetDebugMode(enabled)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	now := h.clock()
	var t0 time.Time

	if h.testRunner != nil {
		h.testRunner.step(h)
		if h.exitAfterScript && h.testRunner.Done() && len(h.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	frame := h.pollInput()

	if h.intro != nil {
		if h.debug {
			t0 = time.Now()
		}
		h.intro.Layout(h.width, h.height, now)
		h.intro.Update(now)
		if h.debug {
			h.stats.introTime = time.Since(t0)
			h.stats.visibleStars = countVisible(h.intro.Stars())
		}
	}

	if h.debug {
		t0 = time.Now()
		h.stats.revealPixels = 0
	}
	for _, b := range h.reveals {
		if b.layout != nil && h.width > 0 && h.height > 0 {
			b.reveal.SetBounds(b.layout(h.width, h.height), now)
		}
		b.tracker.process(frame)
		b.reveal.Update(now)
		if h.debug {
			h.stats.revealPixels += b.reveal.written
		}
	}
	if h.debug {
		h.stats.revealTime = time.Since(t0)
	}

	if h.fps != nil {
		h.fps.update(1 / float64(h.tps))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		h.Screenshot("manual")
	}
	if h.updateFn != nil {
		return h.updateFn()
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	screen.Fill(h.ClearColor.toRGBA())
	if h.drawFn != nil {
		h.drawFn(screen)
	}
	for _, b := range h.reveals {
		b.reveal.Draw(screen)
	}
	h.drawIntro(screen)

	if h.fps != nil {
		h.fps.draw(screen)
	}
	h.flushScreenshots(screen)

	if h.debug {
		h.stats.drawTime = time.Since(t0)
		h.debugLog(h.stats)
	}
}

// drawIntro renders the intro into its own surface and composites it with
// the intro opacity. Once the intro is done the surface is released.
func (h *Host) drawIntro(screen *ebiten.Image) {
	if h.intro == nil {
		return
	}
	if !h.intro.Visible() {
		if h.intro.Done() && h.introSurface != nil {
			h.introSurface.Dispose()
			h.introSurface = nil
		}
		return
	}

	if h.introSurface == nil {
		h.introSurface = NewImageSurface(h.width, h.height)
	} else if w, hgt := h.introSurface.Size(); w != h.width || hgt != h.height {
		h.introSurface.Resize(h.width, h.height)
	}
	h.intro.Draw(h.introSurface)

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(h.intro.Opacity()))
	screen.DrawImage(h.introSurface.Image(), &op)
}

// Layout implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.logicalW > 0 && h.logicalH > 0 {
		h.width, h.height = h.logicalW, h.logicalH
	} else {
		h.width, h.height = outsideWidth, outsideHeight
	}
	return h.width, h.height
}

// pollInput returns this frame's input: the next injected event if any, the
// last injected frame once a script has taken over, or the real devices.
func (h *Host) pollInput() inputFrame {
	if evt, ok := h.popInjected(); ok {
		h.scripted = true
		h.lastFrame = evt.frame()
		return h.lastFrame
	}
	if h.scripted {
		return h.lastFrame
	}
	var f inputFrame
	f, h.touchIDs, h.touches = readInputFrame(h.touchIDs, h.touches)
	return f
}

// Run opens a window and runs host until the window closes or an update
// callback returns an error.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
		h.tps = cfg.TPS
	}
	if cfg.ScreenshotDir != "" {
		h.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.ShowFPS {
		h.fps = newFPSWidget()
	}
	if cfg.Debug {
		h.SetDebugMode(true)
	}
	h.exitAfterScript = cfg.ExitAfterScript

	err := ebiten.RunGame(h)
	for _, b := range h.reveals {
		b.reveal.Dispose()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
