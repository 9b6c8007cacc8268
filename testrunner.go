package dpadcursor

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Ms     int    `json:"ms,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var stepNeedsKey = map[string]bool{
	"down": true, "up": true, "tap": true, "hold": true,
}

var knownActions = map[string]bool{
	"down": true, "up": true, "tap": true, "hold": true, "wait": true,
	"zoom-in": true, "zoom-out": true,
	"grab": true, "ungrab": true,
	"select": true, "select-end": true, "select-cancel": true,
	"resize": true, "reset": true,
}

// TestRunner sequences injected key events and commands across frames for
// scripted runs. Attach to a Controller via SetTestRunner, or drive it
// headless with Play.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	waitUntil time.Time
	done      bool
}

// ErrScriptStalled is returned by Play when a script does not finish within
// its frame limit.
var ErrScriptStalled = errors.New("test script did not finish")

// LoadTestScript parses a JSON test script:
//
//	{"steps": [
//	  {"action": "resize", "width": 1200, "height": 800},
//	  {"action": "hold", "key": "right", "ms": 500},
//	  {"action": "wait", "ms": 600},
//	  {"action": "tap", "key": "center"},
//	  {"action": "zoom-in"}
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
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if stepNeedsKey[st.Action] {
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		}
		if st.Action == "resize" && (st.Width <= 0 || st.Height <= 0) {
			return nil, fmt.Errorf("parse test script: step %d: resize needs width and height", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step method is called from
// Update before injected input is processed each frame.
func (c *Controller) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Play runs the script headless against c, whose scheduler must be a
// Stepper. Each frame advances time by frame, then calls c.Update. Play
// stops once the script is done and the scheduler has no pending work that
// falls due within the next second, or after maxFrames.
func (r *TestRunner) Play(c *Controller, frame time.Duration, maxFrames int) error {
	stepper, ok := c.Scheduler().(Stepper)
	if !ok {
		return fmt.Errorf("play test script: scheduler %T cannot be stepped", c.Scheduler())
	}
	prev := c.testRunner
	c.SetTestRunner(r)
	defer c.SetTestRunner(prev)

	for i := 0; i < maxFrames; i++ {
		c.Update()
		if r.done && len(c.injectQueue) == 0 {
			// Let timers started by the last steps settle, including key-ups
			// of holds that outlast the script.
			if c.holdUntil.After(c.clock.Now()) {
				stepper.Advance(c.holdUntil)
			}
			stepper.AdvanceBy(time.Second)
			return nil
		}
		stepper.AdvanceBy(frame)
	}
	return ErrScriptStalled
}

// step advances the test runner by one frame. Called from Controller.Update.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if !r.waitUntil.IsZero() {
		if c.clock.Now().Before(r.waitUntil) {
			return
		}
		r.waitUntil = time.Time{}
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	key, _ := ParseKey(st.Key)
	switch st.Action {
	case "down":
		c.InjectKey(KeyEvent{Key: key, Action: KeyActionDown})
	case "up":
		c.InjectKey(KeyEvent{Key: key, Action: KeyActionUp})
	case "tap":
		c.InjectTap(key)
	case "hold":
		c.InjectHold(key, time.Duration(st.Ms)*time.Millisecond)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.Ms > 0 {
			r.waitUntil = c.clock.Now().Add(time.Duration(st.Ms) * time.Millisecond)
		}
	case "zoom-in":
		c.Zoom(ZoomIn)
	case "zoom-out":
		c.Zoom(ZoomOut)
	case "grab":
		c.EnterGrab()
	case "ungrab":
		c.ExitGrab()
	case "select":
		c.EnterTextSelection()
	case "select-end":
		c.ExitTextSelection(false)
	case "select-cancel":
		c.ExitTextSelection(true)
	case "resize":
		c.SetSurfaceSize(st.Width, st.Height)
	case "reset":
		c.Reset()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.waitUntil.IsZero() && len(c.injectQueue) == 0 {
		r.done = true
	}
}
