package adboard

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Ctrl   bool    `json:"ctrl,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var testActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"drag":       true,
	"wait":       true,
	"wheel":      true,
	"zoom_in":    true,
	"zoom_out":   true,
	"resize":     true,
	"pause":      true,
	"resume":     true,
	"step":       true,
	"dismiss":    true,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Board via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Board via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the board. The runner's step method
// is called from Board.Update before injected input is processed.
func (b *Board) SetTestRunner(runner *TestRunner) {
	b.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Board.Update.
func (r *TestRunner) step(b *Board) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if b.Injecting() {
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

	switch st.Action {
	case "screenshot":
		b.Screenshot(st.Label)
	case "click":
		b.InjectClick(st.X, st.Y)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "wheel":
		var mods KeyModifiers
		if st.Ctrl {
			mods = ModCtrl
		}
		b.InjectWheel(st.X, st.Y, st.DeltaY, mods)
	case "zoom_in":
		b.ZoomIn()
	case "zoom_out":
		b.ZoomOut()
	case "resize":
		b.Resize(st.Width, st.Height)
	case "pause":
		b.clock.Pause()
	case "resume":
		b.clock.Resume()
	case "step":
		b.clock.Step(max(st.Frames, 1))
	case "dismiss":
		b.ClearSelection()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !b.Injecting() {
		r.done = true
	}
}
