package weather

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	On     bool   `json:"on,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// ModeSetter receives "mode" steps. *Engine implements it.
type ModeSetter interface {
	SetModeString(s string)
}

// TestRunner sequences mode switches, environment changes and screenshots
// across frames for automated visual testing. Attach to a Document via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	modes     ModeSetter
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Document via SetTestRunner. "mode" steps are sent to
// modes, which may be nil when the script has none.
func LoadTestScript(jsonData []byte, modes ModeSetter) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "dark", "reduced":
		case "mode":
			if modes == nil {
				return nil, fmt.Errorf("parse test script: step %d: mode step without a mode target", i)
			}
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("parse test script: step %d: resize needs positive width and height", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, modes: modes}, nil
}

// SetTestRunner attaches a TestRunner to the document. The runner steps once
// at the start of every Update.
func (d *Document) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Document.Update.
func (r *TestRunner) step(d *Document) {
	if r.done {
		return
	}
	// Count down wait frames.
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
		d.Screenshot(st.Label)
	case "mode":
		r.modes.SetModeString(st.Mode)
	case "resize":
		d.SetViewport(st.Width, st.Height)
	case "dark":
		d.SetDark(st.On)
	case "reduced":
		d.SetReducedMotion(st.On)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
