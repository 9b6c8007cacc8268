package dpadcursor

import (
	"testing"
	"time"
)

type recordingStore struct {
	events []PointerEvent
}

func (s *recordingStore) EmitEvent(ev PointerEvent) { s.events = append(s.events, ev) }

func TestGestureGuardDropsUnpairedEvents(t *testing.T) {
	c, _, surf := newTestController(t, 1200, 800, nil)
	p := Vec2{X: 10, Y: 10}

	c.pointerMove(streamCursor, p)
	c.pointerUp(streamCursor, p)
	c.pointerCancel(streamScroll, p)
	if len(surf.events) != 0 {
		t.Fatalf("unpaired events delivered: %v", surf.actions())
	}

	c.pointerDown(streamCursor, p)
	c.pointerDown(streamCursor, p)
	c.pointerHover(p)
	c.pointerUp(streamCursor, p)
	c.pointerUp(streamCursor, p)
	want := []PointerAction{ActionDown, ActionUp}
	if got := surf.actions(); !actionsEqual(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
}

func TestGestureTiming(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)
	p := Vec2{X: 1, Y: 2}

	c.pointerDown(streamCursor, p)
	sched.AdvanceBy(20 * time.Millisecond)
	c.pointerMove(streamCursor, p)
	sched.AdvanceBy(20 * time.Millisecond)
	c.pointerUp(streamCursor, p)

	down := surf.events[0].DownTime
	for i, ev := range surf.events {
		if !ev.DownTime.Equal(down) {
			t.Errorf("event %d: downTime %v, want %v", i, ev.DownTime, down)
		}
		if want := down.Add(time.Duration(i) * 20 * time.Millisecond); !ev.EventTime.Equal(want) {
			t.Errorf("event %d: eventTime %v, want %v", i, ev.EventTime, want)
		}
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	c, _, surf := newTestController(t, 1200, 800, nil)
	p := Vec2{X: 5, Y: 5}

	c.pointerDown(streamCursor, p)
	c.pointerDown(streamScroll, p)
	c.pointerCancel(streamScroll, p)
	c.pointerUp(streamCursor, p)

	want := []PointerAction{ActionDown, ActionDown, ActionCancel, ActionUp}
	if got := surf.actions(); !actionsEqual(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
}

func TestPointerListenersAndStore(t *testing.T) {
	store := &recordingStore{}
	surf := &recordingSurface{}
	c := NewController(surf, &Options{Scheduler: NewLoopScheduler(testEpoch), Store: store})
	c.SetSurfaceSize(100, 100)

	var order []string
	c.OnPointerEvent(func(ev PointerEvent) {
		if len(surf.events) == 0 {
			t.Error("listener ran before the surface received the event")
		}
		order = append(order, "a")
	})
	h := c.OnPointerEvent(func(ev PointerEvent) { order = append(order, "b") })

	c.EnterGrab()
	h.Remove()
	c.ExitGrab()

	want := []string{"a", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("listener calls = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("listener calls = %v, want %v", order, want)
		}
	}
	if len(store.events) != 2 {
		t.Errorf("store saw %d events, want 2", len(store.events))
	}
}

func TestRemoveHandleTwice(t *testing.T) {
	c, _, _ := newTestController(t, 100, 100, nil)
	calls := 0
	h1 := c.OnModeChange(func(from, to Mode) { calls++ })
	h2 := c.OnModeChange(func(from, to Mode) { calls += 10 })
	h1.Remove()
	h1.Remove()
	c.EnterGrab()
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
	h2.Remove()
	var zero CallbackHandle
	zero.Remove()
}

func TestPressedMotionEmitsMove(t *testing.T) {
	c, sched, surf := newTestController(t, 1200, 800, nil)
	press(c, KeyDpadCenter)
	press(c, KeyDpadRight)
	sched.AdvanceBy(48 * time.Millisecond)
	release(c, KeyDpadRight)
	release(c, KeyDpadCenter)

	want := []PointerAction{ActionDown, ActionMove, ActionMove, ActionMove, ActionUp}
	if got := surf.actions(); !actionsEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	checkOrdering(t, surf.events)
}
