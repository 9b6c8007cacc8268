package dpadcursor

import "time"

// ScrollHackSession is a synthetic drag that scrolls content the surface
// cannot scroll itself. The drag pointer never leaves Bounds.
type ScrollHackSession struct {
	Pointer  Vec2
	Bounds   Rect
	DownTime time.Time
	// Deltas counts the deltas applied so far.
	Deltas int
}

// ScrollHack returns a copy of the active scroll drag, if any.
func (c *Controller) ScrollHack() (ScrollHackSession, bool) {
	if c.scroll == nil {
		return ScrollHackSession{}, false
	}
	return *c.scroll, true
}

// requestScroll offers a scroll of (dx, dy) to the surface, then to the
// custom scroller, and finally falls back to a synthetic drag.
func (c *Controller) requestScroll(dx, dy float64) {
	if c.surface != nil && c.surface.CanScroll(dx, dy) {
		c.surface.ScrollBy(dx, dy)
		return
	}
	if c.customScroll != nil && c.customScroll.CustomScroll(dx, dy) {
		return
	}
	st := c.state
	if st.Mode != ModeNormal || st.Pressed {
		return
	}
	c.scrollHack(dx, dy, c.cfg.ScrollHackRetry)
}

// scrollHack drags the synthetic pointer against the scroll direction. When
// the pointer would leave the session bounds the drag is cancelled; with
// retry set, a session that had already scrolled re-applies the delta once
// in a fresh session.
func (c *Controller) scrollHack(dx, dy float64, retry bool) {
	if c.scroll == nil {
		b := c.geom.ScrollHackBounds
		x, y := b.Clamp(c.state.Position.X, c.state.Position.Y)
		c.scroll = &ScrollHackSession{
			Pointer:  Vec2{X: x, Y: y},
			Bounds:   b,
			DownTime: c.clock.Now(),
		}
		c.logger.Debug("scroll drag start", "x", x, "y", y)
		c.pointerDown(streamScroll, c.scroll.Pointer)
	}

	s := c.scroll
	next := Vec2{X: s.Pointer.X - dx, Y: s.Pointer.Y - dy}
	if !s.Bounds.Contains(next.X, next.Y) {
		scrolled := s.Deltas > 0
		c.cancelScrollHack()
		if retry && scrolled {
			c.scrollHack(dx, dy, false)
		}
		return
	}
	s.Pointer = next
	s.Deltas++
	c.pointerMove(streamScroll, next)
}

// cancelScrollHack ends the active drag with a cancel at its last position.
func (c *Controller) cancelScrollHack() {
	s := c.scroll
	if s == nil {
		return
	}
	c.scroll = nil
	c.logger.Debug("scroll drag end", "deltas", s.Deltas)
	c.pointerCancel(streamScroll, s.Pointer)
}
