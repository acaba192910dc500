package hyperspace

import (
	"testing"
	"time"
)

func TestFlashAlpha(t *testing.T) {
	f := NewFlashFade(DefaultConfig())
	assertNear32(t, "peak", f.FlashAlpha(0), 0.9)
	assertNear32(t, "half", f.FlashAlpha(40*time.Millisecond), 0.45)
	assertNear(t, "end", f.FlashAlpha(80*time.Millisecond), 0)
	assertNear(t, "after", f.FlashAlpha(300*time.Millisecond), 0)
	assertNear(t, "before", f.FlashAlpha(-time.Millisecond), 0)
}

func TestFadeOpacity(t *testing.T) {
	f := NewFlashFade(DefaultConfig())
	assertNear32(t, "start", f.Opacity(0), 1)
	assertNear32(t, "half", f.Opacity(400*time.Millisecond), 0.5)
	assertNear32(t, "end", f.Opacity(800*time.Millisecond), 0)
	assertNear32(t, "after", f.Opacity(2*time.Second), 0)
}

func TestCrossEntranceFiresOnce(t *testing.T) {
	f := NewFlashFade(DefaultConfig())
	if f.CrossEntrance(0.4) {
		t.Error("threshold itself must not fire")
	}
	if !f.CrossEntrance(0.41) {
		t.Error("first progress past the threshold should fire")
	}
	if f.CrossEntrance(0.5) || f.CrossEntrance(1) {
		t.Error("entrance fired twice")
	}
	if !f.EntranceFired() {
		t.Error("EntranceFired should report true")
	}
}

func TestDrawFlash(t *testing.T) {
	surf := newRecordingSurface(320, 200)
	drawFlash(surf, 0.9)
	if len(surf.ops) != 1 || surf.ops[0].kind != "rect" {
		t.Fatalf("ops = %+v, want one rect", surf.ops)
	}
	op := surf.ops[0]
	if op.rect != (Rect{Width: 320, Height: 200}) {
		t.Errorf("rect = %+v, want full surface", op.rect)
	}
	if op.color != ColorWhite.WithAlpha(0.9) {
		t.Errorf("color = %+v", op.color)
	}

	surf.reset()
	drawFlash(surf, 0)
	if len(surf.ops) != 0 {
		t.Error("zero alpha should draw nothing")
	}
}
