package dpadcursor

import "math"

// startMotion schedules the first motion tick unless one is pending.
func (c *Controller) startMotion() {
	if c.tickToken != 0 {
		return
	}
	c.sched.Cancel(c.disappearToken)
	c.disappearToken = 0
	c.lastTick = c.clock.Now()
	c.tickToken = c.sched.ScheduleOnce(c.cfg.TickInterval, c.tick)
}

// tick integrates one step of motion and reschedules itself until the
// cursor is at rest.
func (c *Controller) tick() {
	c.tickToken = 0
	st := c.state
	if st == nil {
		return
	}
	now := c.clock.Now()
	dt := float64(now.Sub(c.lastTick)) / 1e6
	c.lastTick = now

	accel := c.cfg.Acceleration * dt
	st.Velocity.X = c.integrate(st.Velocity.X, st.Direction.X, accel)
	st.Velocity.Y = c.integrate(st.Velocity.Y, st.Direction.Y, accel)

	if st.idle() {
		c.armDisappear()
		return
	}

	prev := st.Position
	st.Position.X, st.Position.Y = c.geom.Bounds.Clamp(prev.X+st.Velocity.X, prev.Y+st.Velocity.Y)
	st.LastActivity = now
	if st.Position != prev {
		c.cursorMoved()
	}
	// Collaborators may detach the cursor from inside a callback.
	if c.state == nil {
		return
	}
	c.edgeScroll()
	if c.state == nil {
		return
	}
	if c.debug {
		c.debugCheckState()
	}
	if c.tickToken == 0 {
		c.tickToken = c.sched.ScheduleOnce(c.cfg.TickInterval, c.tick)
	}
}

func (c *Controller) integrate(v float64, dir int, accel float64) float64 {
	d := clamp(float64(dir), -1, 1)
	v = clamp(v+d*accel, -c.geom.MaxSpeed, c.geom.MaxSpeed)
	if math.Abs(v) < c.cfg.SnapThreshold {
		return 0
	}
	return v
}

// cursorMoved reports a position change to whoever follows the cursor in the
// current mode.
func (c *Controller) cursorMoved() {
	st := c.state
	switch {
	case st.Mode == ModeTextSelection:
		if c.textSel != nil {
			x, y := st.intPosition()
			c.textSel.TextSelectionMove(x, y)
		}
	case st.Mode == ModeGrab || st.Pressed:
		c.pointerMove(streamCursor, st.Position)
	default:
		c.pointerHover(st.Position)
	}
	c.redraw()
}

// edgeScroll requests a scroll along each axis on which the cursor is near
// an edge and still moving toward it.
func (c *Controller) edgeScroll() {
	st := c.state
	if st.Mode == ModeGrab {
		return
	}
	b := c.geom.Bounds
	pad := c.cfg.ScrollStartPadding
	var dx, dy float64
	if (st.Velocity.X < 0 && st.Position.X <= b.X+pad) ||
		(st.Velocity.X > 0 && st.Position.X >= b.X+b.Width-pad) {
		dx = math.Trunc(st.Velocity.X)
	}
	if (st.Velocity.Y < 0 && st.Position.Y <= b.Y+pad) ||
		(st.Velocity.Y > 0 && st.Position.Y >= b.Y+b.Height-pad) {
		dy = math.Trunc(st.Velocity.Y)
	}
	if dx == 0 && dy == 0 {
		return
	}
	c.requestScroll(dx, dy)
}
