package hyperspace

// syntheticTouchID is the touch ID used by injected touch events.
const syntheticTouchID = 1 << 20

// syntheticPointerEvent is one injected frame of input in screen
// coordinates. A touch event with pressed false lifts the synthetic touch.
type syntheticPointerEvent struct {
	screenX, screenY float64
	touch            bool
	pressed          bool
}

// frame converts the event into the input the trackers see this frame.
func (e syntheticPointerEvent) frame() inputFrame {
	switch {
	case e.touch && e.pressed:
		return inputFrame{
			mouseX: pointerOutside, mouseY: pointerOutside,
			touches: []touchPoint{{id: syntheticTouchID, x: e.screenX, y: e.screenY}},
		}
	case e.touch:
		return inputFrame{mouseX: pointerOutside, mouseY: pointerOutside}
	}
	return inputFrame{mouseX: e.screenX, mouseY: e.screenY}
}

// InjectHover queues a cursor position at the given screen coordinates. The
// event is consumed on the next Update. Once any event has been injected the
// host ignores the real mouse and touch devices.
func (h *Host) InjectHover(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectLeave queues a cursor position outside every target.
func (h *Host) InjectLeave() {
	h.InjectHover(pointerOutside, pointerOutside)
}

// InjectTouch queues a touch held at the given screen coordinates. Repeated
// calls move the same touch.
func (h *Host) InjectTouch(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		touch:   true,
		pressed: true,
	})
}

// InjectRelease queues the lift of the synthetic touch.
func (h *Host) InjectRelease() {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{touch: true})
}

// InjectSweep queues a cursor path from (fromX, fromY) to (toX, toY),
// linearly interpolated over frames frames. Minimum frames is 2.
func (h *Host) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		h.InjectHover(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectSwipe queues a touch path like InjectSweep followed by a release.
func (h *Host) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		h.InjectTouch(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease()
}

// popInjected removes and returns the oldest injected event.
func (h *Host) popInjected() (syntheticPointerEvent, bool) {
	if len(h.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]
	return evt, true
}
