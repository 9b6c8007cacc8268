package dpadcursor

import "math"

// Vec2 is a 2D vector used for positions and velocities throughout the API.
// Coordinates are surface-local with the origin at the top-left and Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Clamp returns (x, y) moved to the nearest point inside the rectangle.
func (r Rect) Clamp(x, y float64) (float64, float64) {
	return clamp(x, r.X, r.X+r.Width), clamp(y, r.Y, r.Y+r.Height)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Mode is the cursor's current interaction mode. Exactly one mode is active
// at any time.
type Mode uint8

const (
	ModeNormal        Mode = iota // hover and click
	ModeGrab                      // pointer held down, motion drags content
	ModeTextSelection             // motion extends a text selection
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeGrab:
		return "grab"
	case ModeTextSelection:
		return "text-selection"
	default:
		return "unknown"
	}
}

// PointerAction identifies the kind of a synthesized pointer event.
type PointerAction uint8

const (
	ActionDown         PointerAction = iota // first contact of a gesture
	ActionMove                              // contact moved while down
	ActionUp                                // last contact lifted
	ActionHoverMove                         // pointer moved with no contact
	ActionCancel                            // gesture aborted, no click
	ActionPointer2Down                      // second contact added
	ActionPointer2Up                        // second contact lifted
)

func (a PointerAction) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionHoverMove:
		return "hover-move"
	case ActionCancel:
		return "cancel"
	case ActionPointer2Down:
		return "pointer2-down"
	case ActionPointer2Up:
		return "pointer2-up"
	default:
		return "unknown"
	}
}

// ZoomDirection selects whether a pinch gesture spreads or closes.
type ZoomDirection uint8

const (
	ZoomIn  ZoomDirection = iota // pointers spread apart
	ZoomOut                      // pointers close together
)

func (d ZoomDirection) String() string {
	if d == ZoomOut {
		return "out"
	}
	return "in"
}
