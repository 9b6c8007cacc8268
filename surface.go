package dpadcursor

// Surface is the content-rendering surface the cursor drives. It receives
// the synthesized pointer stream and is asked first whenever edge motion
// wants to scroll.
type Surface interface {
	DispatchPointerEvent(ev PointerEvent)
	// CanScroll reports whether the content can scroll natively by (dx, dy).
	CanScroll(dx, dy float64) bool
	ScrollBy(dx, dy float64)
}

// The capability interfaces below are optional. A Surface that implements
// one is picked up automatically by NewController; Options can supply them
// from a separate collaborator instead.

// LongPressHandler is told when the activation key is held past the
// long-press delay. Coordinates are the cursor's, truncated.
type LongPressHandler interface {
	LongPress(x, y int)
}

// CustomScroller gets a chance to scroll content the surface could not
// scroll natively. Returning false falls through to the synthetic drag.
type CustomScroller interface {
	CustomScroll(dx, dy float64) bool
}

// TextSelectionHandler follows the cursor through TextSelection mode.
type TextSelectionHandler interface {
	TextSelectionStart(x, y int)
	TextSelectionMove(x, y int)
	TextSelectionEnd(x, y int)
	TextSelectionCancel()
}

// EventStore is an optional sink that mirrors every pointer event, e.g. into
// an ECS world (see the ecs package).
type EventStore interface {
	EmitEvent(ev PointerEvent)
}
