package dpadcursor

import (
	"fmt"
	"math"
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recordingSurface records everything the Controller sends it.
type recordingSurface struct {
	events      []PointerEvent
	canScroll   bool
	scrolls     []Vec2
	longPresses [][2]int
	selection   []string
}

func (s *recordingSurface) DispatchPointerEvent(ev PointerEvent) {
	s.events = append(s.events, ev)
}

func (s *recordingSurface) CanScroll(dx, dy float64) bool { return s.canScroll }

func (s *recordingSurface) ScrollBy(dx, dy float64) {
	s.scrolls = append(s.scrolls, Vec2{X: dx, Y: dy})
}

func (s *recordingSurface) LongPress(x, y int) {
	s.longPresses = append(s.longPresses, [2]int{x, y})
}

func (s *recordingSurface) TextSelectionStart(x, y int) {
	s.selection = append(s.selection, fmt.Sprintf("start %d %d", x, y))
}

func (s *recordingSurface) TextSelectionMove(x, y int) {
	s.selection = append(s.selection, fmt.Sprintf("move %d %d", x, y))
}

func (s *recordingSurface) TextSelectionEnd(x, y int) {
	s.selection = append(s.selection, fmt.Sprintf("end %d %d", x, y))
}

func (s *recordingSurface) TextSelectionCancel() {
	s.selection = append(s.selection, "cancel")
}

func (s *recordingSurface) actions() []PointerAction {
	out := make([]PointerAction, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

func (s *recordingSurface) count(a PointerAction) int {
	n := 0
	for _, ev := range s.events {
		if ev.Action == a {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T, w, h int, cfg *Config) (*Controller, *LoopScheduler, *recordingSurface) {
	t.Helper()
	sched := NewLoopScheduler(testEpoch)
	surf := &recordingSurface{}
	c := NewController(surf, &Options{Config: cfg, Scheduler: sched})
	c.SetSurfaceSize(w, h)
	return c, sched, surf
}

func press(c *Controller, k Key) bool {
	return c.HandleKey(KeyEvent{Key: k, Action: KeyActionDown})
}

func release(c *Controller, k Key) bool {
	return c.HandleKey(KeyEvent{Key: k, Action: KeyActionUp})
}

func cursorPos(t *testing.T, c *Controller) Vec2 {
	t.Helper()
	st, ok := c.Cursor()
	if !ok {
		t.Fatal("cursor not attached")
	}
	return st.Position
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func actionsEqual(got, want []PointerAction) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// checkOrdering verifies gesture pairing: every event sharing a down's
// DownTime follows it, and every up or cancel closes exactly one open down.
// Pointer 0 may carry only one open down at a time, and no hover-move while
// it is down. The pinch's second pointer is paired by pointer2-down/up.
func checkOrdering(t *testing.T, events []PointerEvent) {
	t.Helper()
	open := map[time.Time]bool{}
	primaryDown := false
	for i, ev := range events {
		switch ev.Action {
		case ActionHoverMove:
			if primaryDown {
				t.Fatalf("event %d: hover-move on pointer 0 while a down is open", i)
			}
			continue
		case ActionDown:
			if open[ev.DownTime] {
				t.Fatalf("event %d: down while a gesture with the same downTime is open", i)
			}
			if primaryDown {
				t.Fatalf("event %d: second down on pointer 0 while a down is open (x=%v)", i, ev.X)
			}
			open[ev.DownTime] = true
			primaryDown = true
		case ActionMove, ActionPointer2Down, ActionPointer2Up:
			if !open[ev.DownTime] {
				t.Fatalf("event %d: %v without a preceding down", i, ev.Action)
			}
		case ActionUp, ActionCancel:
			if !open[ev.DownTime] || !primaryDown {
				t.Fatalf("event %d: %v without an unmatched down", i, ev.Action)
			}
			delete(open, ev.DownTime)
			primaryDown = false
		}
		if ev.EventTime.Before(ev.DownTime) {
			t.Fatalf("event %d: eventTime before downTime", i)
		}
	}
}
