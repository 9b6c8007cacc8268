package dpadcursor

import "time"

// PointerEvent is one synthesized pointer record. Events belonging to one
// gesture share DownTime, fixed by the gesture's ActionDown.
type PointerEvent struct {
	// PointerID is the contact the action refers to: 0 for the primary
	// pointer, 1 for the second contact of a pinch.
	PointerID int
	Action    PointerAction
	// X, Y locate pointer 0. X2, Y2 locate pointer 1 when PointerCount is 2.
	X, Y         float64
	X2, Y2       float64
	PointerCount int
	DownTime     time.Time
	EventTime    time.Time
}

// gestureStream identifies an independent pointer gesture. Each stream has
// its own down/up pairing.
type gestureStream uint8

const (
	streamCursor gestureStream = iota // click and grab at the cursor
	streamScroll                      // synthetic scroll drag
	streamPinch                       // two-pointer zoom
	streamCount
)

func (s gestureStream) String() string {
	switch s {
	case streamCursor:
		return "cursor"
	case streamScroll:
		return "scroll"
	case streamPinch:
		return "pinch"
	}
	return "unknown"
}

type openGesture struct {
	open     bool
	downTime time.Time
}

func (c *Controller) pointerDown(stream gestureStream, p Vec2) {
	c.emit(stream, PointerEvent{Action: ActionDown, X: p.X, Y: p.Y, PointerCount: 1})
}

func (c *Controller) pointerMove(stream gestureStream, p Vec2) {
	c.emit(stream, PointerEvent{Action: ActionMove, X: p.X, Y: p.Y, PointerCount: 1})
}

func (c *Controller) pointerUp(stream gestureStream, p Vec2) {
	c.emit(stream, PointerEvent{Action: ActionUp, X: p.X, Y: p.Y, PointerCount: 1})
}

func (c *Controller) pointerCancel(stream gestureStream, p Vec2) {
	c.emit(stream, PointerEvent{Action: ActionCancel, X: p.X, Y: p.Y, PointerCount: 1})
}

func (c *Controller) pointerHover(p Vec2) {
	c.emit(streamCursor, PointerEvent{Action: ActionHoverMove, X: p.X, Y: p.Y, PointerCount: 1})
}

// emit stamps ev with the stream's timing and delivers it. Events that would
// break down/up pairing are dropped.
func (c *Controller) emit(stream gestureStream, ev PointerEvent) {
	now := c.clock.Now()
	g := &c.gestures[stream]
	ev.EventTime = now

	switch ev.Action {
	case ActionDown:
		if g.open {
			c.logger.Debug("dropped down: gesture already open", "stream", stream)
			return
		}
		g.open = true
		g.downTime = now
		ev.DownTime = now
	case ActionHoverMove:
		if c.primaryHeld() {
			c.logger.Debug("dropped hover: pointer 0 is down")
			return
		}
		ev.DownTime = now
	default:
		if !g.open {
			c.logger.Debug("dropped event: no open gesture", "stream", stream, "action", ev.Action)
			return
		}
		ev.DownTime = g.downTime
		if ev.Action == ActionUp || ev.Action == ActionCancel {
			*g = openGesture{}
		}
	}
	c.dispatch(ev)
}

// primaryHeld reports whether any stream holds pointer 0 down.
func (c *Controller) primaryHeld() bool {
	for _, g := range c.gestures {
		if g.open {
			return true
		}
	}
	return false
}

func (c *Controller) dispatch(ev PointerEvent) {
	if c.surface != nil {
		c.surface.DispatchPointerEvent(ev)
	}
	for _, h := range c.handlers.pointer {
		h.fn(ev)
	}
	if c.store != nil {
		c.store.EmitEvent(ev)
	}
}
