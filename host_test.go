package hyperspace

import (
	"errors"
	"io"
	"testing"
	"time"
)

// fakeClock is a settable frame clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// scriptedHost returns a host on a fake clock whose input is scripted, so
// Update never reads the real devices.
func scriptedHost(w, h int) (*Host, *fakeClock) {
	clock := &fakeClock{now: testEpoch}
	host := NewHost()
	host.SetClock(clock.Now)
	host.Layout(w, h)
	host.InjectLeave()
	return host, clock
}

func TestHostDrivesIntro(t *testing.T) {
	host, clock := scriptedHost(1000, 800)
	in := NewIntro(seededConfig())
	host.SetIntro(in)

	var completed bool
	in.OnComplete = func() { completed = true }

	if err := host.Update(); err != nil {
		t.Fatal(err)
	}
	if !in.Started() {
		t.Fatal("intro not started by the first Update")
	}
	if in.Viewport().Width != 1000 {
		t.Errorf("viewport = %+v", in.Viewport())
	}

	for i := 0; i < 400 && !completed; i++ {
		clock.advance(16 * time.Millisecond)
		if err := host.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if !completed || in.Visible() {
		t.Error("intro should complete under the host")
	}
}

func TestHostResizeReachesIntro(t *testing.T) {
	host, clock := scriptedHost(1000, 800)
	in := NewIntro(seededConfig())
	host.SetIntro(in)
	host.Update()

	host.Layout(640, 480)
	clock.advance(16 * time.Millisecond)
	host.Update()
	if in.Viewport() != NewViewport(640, 480, in.Config()) {
		t.Errorf("viewport after resize = %+v", in.Viewport())
	}
}

func TestHostDrivesReveal(t *testing.T) {
	host, clock := scriptedHost(800, 600)
	r := NewReveal(DefaultConfig())
	r.SetBounds(Rect{X: 100, Y: 100, Width: 200, Height: 200}, clock.Now())
	host.AddReveal(r)
	if len(host.Reveals()) != 1 || host.Reveals()[0] != r {
		t.Fatal("reveal not installed")
	}

	host.Update() // consumes the injected leave, measures
	host.InjectHover(150, 160)
	clock.advance(16 * time.Millisecond)
	host.Update()

	if r.Target() != 1 {
		t.Fatal("hover inside the bounds should start the reveal")
	}
	if x, y := r.Pointer(); x != 50 || y != 60 {
		t.Errorf("pointer = (%v, %v), want (50, 60)", x, y)
	}
	if r.Strength() <= 0 {
		t.Error("strength should advance on the same Update")
	}
}

func TestHostRevealLayoutFollowsResize(t *testing.T) {
	host, clock := scriptedHost(800, 600)
	r := NewReveal(DefaultConfig())
	host.AddRevealLayout(r, func(w, h int) Rect {
		return Rect{X: float64(w) - 300, Y: 100, Width: 200, Height: float64(h) / 2}
	})

	host.Update()
	if r.Bounds() != (Rect{X: 500, Y: 100, Width: 200, Height: 300}) {
		t.Fatalf("bounds = %+v", r.Bounds())
	}

	host.Layout(1000, 800)
	clock.advance(16 * time.Millisecond)
	host.Update()
	if w, h := r.Size(); w != 200 || h != 300 {
		t.Errorf("remeasured before the debounce: %dx%d", w, h)
	}

	clock.advance(DefaultConfig().RevealResizeDelay)
	host.Update()
	if r.Bounds() != (Rect{X: 700, Y: 100, Width: 200, Height: 400}) {
		t.Errorf("bounds after resize = %+v", r.Bounds())
	}
	if w, h := r.Size(); w != 200 || h != 400 {
		t.Errorf("Size after resize = %dx%d, want 200x400", w, h)
	}
}

func TestHostUpdateFuncError(t *testing.T) {
	host, _ := scriptedHost(100, 100)
	sentinel := errors.New("quit")
	host.SetUpdateFunc(func() error { return sentinel })
	if err := host.Update(); !errors.Is(err, sentinel) {
		t.Errorf("Update = %v, want the callback error", err)
	}
}

func TestHostLayout(t *testing.T) {
	host := NewHost()
	if w, h := host.Layout(1280, 720); w != 1280 || h != 720 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	host.SetLogicalSize(320, 200)
	if w, h := host.Layout(1280, 720); w != 320 || h != 200 {
		t.Errorf("pinned Layout = %dx%d", w, h)
	}
	if w, h := host.Size(); w != 320 || h != 200 {
		t.Errorf("Size = %dx%d", w, h)
	}
	host.SetLogicalSize(0, 0)
	if w, _ := host.Layout(1280, 720); w != 1280 {
		t.Error("zero logical size should restore the window size")
	}
}

func TestHostDebugStats(t *testing.T) {
	host, clock := scriptedHost(400, 300)
	host.SetDebugMode(true)
	defer host.SetDebugMode(false)
	SetLogOutput(io.Discard)

	in := NewIntro(seededConfig())
	host.SetIntro(in)
	host.Update()
	clock.advance(100 * time.Millisecond)
	host.Update()

	if host.stats.visibleStars != in.Config().StarCount {
		t.Errorf("visible stars = %d, want %d", host.stats.visibleStars, in.Config().StarCount)
	}
}

func TestHostTestRunnerExit(t *testing.T) {
	host, _ := scriptedHost(100, 100)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	host.SetTestRunner(runner)
	host.exitAfterScript = true

	var err1 error
	for i := 0; i < 5 && err1 == nil; i++ {
		err1 = host.Update()
	}
	if err1 == nil {
		t.Fatal("host should stop once the script is done")
	}
}
