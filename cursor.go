package dpadcursor

import "time"

// Direction is the per-axis directional intent, each component in {-1, 0, 1}.
type Direction struct {
	X, Y int
}

// CursorState is the virtual cursor owned by a Controller.
type CursorState struct {
	Position  Vec2
	Velocity  Vec2
	Direction Direction
	Mode      Mode
	// Pressed is true while the activation key holds a synthetic press.
	Pressed      bool
	LastActivity time.Time
}

// Visible reports whether the cursor should be drawn at now. Outside Normal
// mode the cursor never disappears.
func (s *CursorState) Visible(now time.Time, timeout time.Duration) bool {
	return s.Mode != ModeNormal || now.Sub(s.LastActivity) < timeout
}

func (s *CursorState) idle() bool {
	return s.Direction == (Direction{}) && s.Velocity == (Vec2{})
}

// CursorView is what a presentation layer needs to draw the cursor glyph.
type CursorView struct {
	Position Vec2
	Mode     Mode
	Pressed  bool
	Visible  bool
	Radius   float64
}
