package hyperspace

import "github.com/hajimehoshi/ebiten/v2"

// maxPointers bounds tracked contacts: pointer 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// PointerTarget receives pointer and touch events in target-local
// coordinates. *Reveal implements it.
type PointerTarget interface {
	// Bounds is the target rectangle in screen coordinates.
	Bounds() Rect
	PointerEnter(x, y float64)
	PointerMove(x, y float64)
	PointerLeave()
	TouchStart(x, y float64)
	TouchMove(x, y float64)
	TouchEnd()
}

// touchPoint is one active touch in screen coordinates.
type touchPoint struct {
	id   ebiten.TouchID
	x, y float64
}

// inputFrame is one frame of raw input in screen coordinates.
type inputFrame struct {
	mouseX, mouseY float64
	touches        []touchPoint
}

// readInputFrame samples the cursor and all active touches. ids and touches
// are reused buffers.
func readInputFrame(ids []ebiten.TouchID, touches []touchPoint) (inputFrame, []ebiten.TouchID, []touchPoint) {
	mx, my := ebiten.CursorPosition()
	ids = ebiten.AppendTouchIDs(ids[:0])
	touches = touches[:0]
	for _, id := range ids {
		tx, ty := ebiten.TouchPosition(id)
		touches = append(touches, touchPoint{id: id, x: float64(tx), y: float64(ty)})
	}
	return inputFrame{mouseX: float64(mx), mouseY: float64(my), touches: touches}, ids, touches
}

// PointerTracker turns per-frame cursor and touch positions into
// enter/move/leave and touch start/move/end calls on a target. A touch that
// starts inside the target keeps driving it until it lifts, even when it
// slides outside; the mouse is ignored while such a touch is down.
type PointerTracker struct {
	target PointerTarget

	mouseInside bool
	mouseX      float64
	mouseY      float64

	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	driver    int // touch slot driving the target, 0 when none
}

// NewPointerTracker creates a tracker feeding target.
func NewPointerTracker(target PointerTarget) *PointerTracker {
	return &PointerTracker{target: target}
}

// Target returns the tracked target.
func (t *PointerTracker) Target() PointerTarget {
	return t.target
}

// process handles one input frame.
func (t *PointerTracker) process(f inputFrame) {
	t.processTouches(f.touches)
	if t.driver == 0 {
		t.processMouse(f.mouseX, f.mouseY)
	}
}

// processMouse handles the cursor (pointer 0).
func (t *PointerTracker) processMouse(sx, sy float64) {
	b := t.target.Bounds()
	inside := !b.Empty() && b.Contains(sx, sy)
	lx, ly := sx-b.X, sy-b.Y

	switch {
	case inside && !t.mouseInside:
		t.target.PointerEnter(lx, ly)
	case inside && (sx != t.mouseX || sy != t.mouseY):
		t.target.PointerMove(lx, ly)
	case !inside && t.mouseInside:
		t.target.PointerLeave()
	}
	t.mouseInside = inside
	t.mouseX, t.mouseY = sx, sy
}

// processTouches handles touches (pointers 1-9).
func (t *PointerTracker) processTouches(touches []touchPoint) {
	var active [maxPointers]bool
	b := t.target.Bounds()

	for _, tp := range touches {
		slot, fresh := t.touchSlot(tp.id)
		if slot < 0 {
			continue
		}
		active[slot] = true
		lx, ly := tp.x-b.X, tp.y-b.Y

		switch {
		case fresh && t.driver == 0 && !b.Empty() && b.Contains(tp.x, tp.y):
			t.driver = slot
			t.mouseInside = false
			t.target.TouchStart(lx, ly)
		case slot == t.driver:
			t.target.TouchMove(lx, ly)
		}
	}

	// Release slots whose touch lifted.
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] || active[i] {
			continue
		}
		if i == t.driver {
			t.driver = 0
			t.target.TouchEnd()
		}
		t.touchUsed[i] = false
		t.touchMap[i] = 0
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), allocating one
// for a new touch. fresh is true for a new allocation. Returns -1 if full.
func (t *PointerTracker) touchSlot(id ebiten.TouchID) (slot int, fresh bool) {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == id {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = id
			return i, true
		}
	}
	return -1, false
}
