package hyperspace

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// stepActions runs one script step against the host. "wait" is handled by
// the runner itself.
var stepActions = map[string]func(h *Host, st testStep){
	"screenshot": func(h *Host, st testStep) { h.Screenshot(st.Label) },
	"hover":      func(h *Host, st testStep) { h.InjectHover(st.X, st.Y) },
	"leave":      func(h *Host, _ testStep) { h.InjectLeave() },
	"sweep": func(h *Host, st testStep) {
		h.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
	"touch":   func(h *Host, st testStep) { h.InjectTouch(st.X, st.Y) },
	"release": func(h *Host, _ testStep) { h.InjectRelease() },
	"swipe": func(h *Host, st testStep) {
		h.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
	"resize": func(h *Host, st testStep) { h.SetLogicalSize(st.Width, st.Height) },
}

// TestRunner sequences injected input, resizes and screenshots across frames
// for scripted visual checks of the intro and the reveal. Attach to a Host
// via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached to a Host.
//
//	{"steps": [
//	  {"action": "wait", "frames": 400},
//	  {"action": "hover", "x": 320, "y": 240},
//	  {"action": "screenshot", "label": "reveal"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := stepActions[st.Action]; !ok && st.Action != "wait" {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the host. Its step method runs at
// the top of every Update, before input is read.
func (h *Host) SetTestRunner(runner *TestRunner) {
	h.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(h *Host) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(h.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if st.Action == "wait" {
		// This frame counts as the first one waited.
		r.waitCount = max(st.Frames-1, 0)
	} else {
		stepActions[st.Action](h, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 {
		r.done = true
	}
}
