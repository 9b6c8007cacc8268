package dpadcursor

import (
	"testing"
	"time"
)

func pinchShapeOK(events []PointerEvent) bool {
	n := len(events)
	if n < 4 {
		return false
	}
	if events[0].Action != ActionDown || events[1].Action != ActionPointer2Down ||
		events[n-2].Action != ActionPointer2Up || events[n-1].Action != ActionUp {
		return false
	}
	for _, ev := range events[2 : n-2] {
		if ev.Action != ActionMove {
			return false
		}
	}
	return true
}

func TestZoomInScenario(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)

	if !c.Zoom(ZoomIn) {
		t.Fatal("Zoom should start a pinch")
	}
	start := surf.events[1]
	if start.X != 520 || start.Y != 400 || start.X2 != 680 || start.Y2 != 400 {
		t.Errorf("start points (%v,%v) (%v,%v), want (520,400) (680,400)", start.X, start.Y, start.X2, start.Y2)
	}

	sched.AdvanceBy(500 * time.Millisecond)
	if c.Zoom(ZoomIn) {
		t.Error("a second zoom during a pinch should be ignored")
	}
	sched.AdvanceBy(500 * time.Millisecond)

	evs := surf.events
	if !pinchShapeOK(evs) {
		t.Fatalf("sequence = %v, want down, pointer2-down, move*, pointer2-up, up", surf.actions())
	}
	if got := surf.count(ActionMove); got != 63 {
		t.Errorf("moves = %d, want 63", got)
	}
	if surf.count(ActionPointer2Up) != 1 || surf.count(ActionUp) != 1 {
		t.Error("want exactly one pointer2-up/up pair")
	}
	last := evs[len(evs)-3]
	for _, ev := range evs[len(evs)-3:] {
		if ev.X != 280 || ev.Y != 400 || ev.X2 != 920 || ev.Y2 != 400 {
			t.Errorf("%v at (%v,%v) (%v,%v), want (280,400) (920,400)", ev.Action, ev.X, ev.Y, ev.X2, ev.Y2)
		}
		if ev.X != last.X || ev.X2 != last.X2 {
			t.Errorf("%v coordinates differ from the last move", ev.Action)
		}
	}
	if p2up := evs[len(evs)-2]; p2up.PointerID != 1 || p2up.PointerCount != 2 {
		t.Errorf("pointer2-up id %d count %d, want 1 and 2", p2up.PointerID, p2up.PointerCount)
	}
	if up := evs[len(evs)-1]; up.PointerID != 0 || up.PointerCount != 1 {
		t.Errorf("up id %d count %d, want 0 and 1", up.PointerID, up.PointerCount)
	}
	if got := evs[len(evs)-1].EventTime.Sub(evs[0].DownTime); got != time.Second {
		t.Errorf("pinch lasted %v, want 1s", got)
	}
	if _, ok := c.Pinch(); ok {
		t.Error("session should be cleared")
	}
	checkOrdering(t, evs)

	if !c.Zoom(ZoomOut) {
		t.Error("a new pinch should start once the previous one ends")
	}
}

func TestZoomOutReversesPoints(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)
	c.Zoom(ZoomOut)
	sched.AdvanceBy(time.Second)

	evs := surf.events
	if !pinchShapeOK(evs) {
		t.Fatalf("sequence = %v", surf.actions())
	}
	if evs[0].X != 280 || evs[1].X2 != 920 {
		t.Errorf("start x = %v, %v, want 280, 920", evs[0].X, evs[1].X2)
	}
	if end := evs[len(evs)-1]; end.X != 520 || end.X2 != 680 {
		t.Errorf("end x = %v, %v, want 520, 680", end.X, end.X2)
	}
}

func TestPinchMidpointLinear(t *testing.T) {
	c, sched, _ := newTestController(t, 1200, 800, nil)
	c.Zoom(ZoomIn)
	sched.AdvanceBy(496 * time.Millisecond)

	s, ok := c.Pinch()
	if !ok {
		t.Fatal("pinch should be running")
	}
	pts := s.Points(sched.Now())
	if !near(pts[0].X, 520-240*0.496) || !near(pts[1].X, 680+240*0.496) {
		t.Errorf("points = %v", pts)
	}
}

func TestPinchShortDurationShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZoomDuration = 40 * time.Millisecond
	c, sched, surf := newTestController(t, 1200, 800, &cfg)
	c.Zoom(ZoomIn)
	sched.AdvanceBy(time.Second)

	if !pinchShapeOK(surf.events) {
		t.Fatalf("sequence = %v", surf.actions())
	}
	if got := surf.count(ActionMove); got != 3 { // 16ms, 32ms, 40ms
		t.Errorf("moves = %d, want 3", got)
	}
}

func TestPinchProgressClamped(t *testing.T) {
	cfg := DefaultConfig()
	s := newPinchZoomSession(ZoomIn, cfg, cfg.Derive(1200, 800), testEpoch)

	tests := []struct {
		name string
		at   time.Duration
		want float64
	}{
		{"before start", -time.Second, 0},
		{"start", 0, 0},
		{"quarter", 250 * time.Millisecond, 0.25},
		{"end", time.Second, 1},
		{"after end", 3 * time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Progress(testEpoch.Add(tt.at)); !near(got, tt.want) {
				t.Errorf("Progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPinchEasing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZoomEasing = "cubic-in-out"
	s := newPinchZoomSession(ZoomIn, cfg, cfg.Derive(1200, 800), testEpoch)

	quarter := s.Points(testEpoch.Add(250 * time.Millisecond))
	if !near(quarter[0].X, 505) { // 520 - 240*0.0625
		t.Errorf("eased quarter x = %v, want 505", quarter[0].X)
	}
	half := s.Points(testEpoch.Add(500 * time.Millisecond))
	if !near(half[0].X, 400) {
		t.Errorf("eased half x = %v, want 400", half[0].X)
	}
}

func TestZoomIndependentOfMotion(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)
	c.Zoom(ZoomIn)
	press(c, KeyDpadLeft)
	sched.AdvanceBy(300 * time.Millisecond)
	release(c, KeyDpadLeft)
	sched.AdvanceBy(700 * time.Millisecond)

	var pinch []PointerEvent
	for _, ev := range surf.events {
		if ev.Action != ActionHoverMove {
			pinch = append(pinch, ev)
		}
	}
	if !pinchShapeOK(pinch) {
		t.Errorf("pinch sequence disturbed by motion: %v", surf.actions())
	}
}

func TestPinchOwnsPrimaryPointer(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)
	c.Zoom(ZoomIn)
	sched.AdvanceBy(100 * time.Millisecond)

	if !press(c, KeyDpadCenter) {
		t.Error("activation during a pinch should be consumed")
	}
	if c.EnterGrab() {
		t.Error("grab should be refused during a pinch")
	}
	sched.AdvanceBy(100 * time.Millisecond)
	release(c, KeyDpadCenter)
	sched.AdvanceBy(time.Second)

	if !pinchShapeOK(surf.events) {
		t.Errorf("sequence = %v, want an undisturbed pinch", surf.actions())
	}
	if st, _ := c.Cursor(); st.Pressed {
		t.Error("cursor should not be pressed")
	}
	checkOrdering(t, surf.events)
}

func TestZoomRefusedWhilePressed(t *testing.T) {
	c, _, surf := newTestController(t, 1200, 800, nil)
	press(c, KeyDpadCenter)
	if c.Zoom(ZoomIn) {
		t.Error("zoom should be refused while a click holds pointer 0")
	}
	release(c, KeyDpadCenter)
	if !c.Zoom(ZoomIn) {
		t.Error("zoom should start once the click is released")
	}
	checkOrdering(t, surf.events)
}
