package dpadcursor

import (
	"math"
	"time"

	"github.com/tanema/gween"
)

// PinchZoomSession is a synthetic two-pointer pinch in progress. Pointer 0
// travels from Start[0] to End[0] and pointer 1 from Start[1] to End[1].
type PinchZoomSession struct {
	Direction ZoomDirection
	StartTime time.Time
	Duration  time.Duration
	Start     [2]Vec2
	End       [2]Vec2

	tween *gween.Tween
}

func newPinchZoomSession(dir ZoomDirection, cfg Config, g Geometry, now time.Time) *PinchZoomSession {
	cx, cy := g.Width/2, g.Height/2
	far := cfg.ZoomFactor * math.Min(g.Width, g.Height) / 2
	near := far * cfg.ZoomNearRatio
	from, to := near, far
	if dir == ZoomOut {
		from, to = far, near
	}
	return &PinchZoomSession{
		Direction: dir,
		StartTime: now,
		Duration:  cfg.ZoomDuration,
		Start:     [2]Vec2{{X: cx - from, Y: cy}, {X: cx + from, Y: cy}},
		End:       [2]Vec2{{X: cx - to, Y: cy}, {X: cx + to, Y: cy}},
		tween:     gween.New(0, 1, float32(cfg.ZoomDuration.Seconds()), cfg.Easing()),
	}
}

// Progress returns the elapsed fraction of the pinch at now, in [0, 1].
func (s *PinchZoomSession) Progress(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return clamp(float64(now.Sub(s.StartTime))/float64(s.Duration), 0, 1)
}

// Points returns both pointer positions at now.
func (s *PinchZoomSession) Points(now time.Time) [2]Vec2 {
	p := s.Progress(now)
	if p >= 1 {
		return s.End
	}
	eased, _ := s.tween.Set(float32(p * s.Duration.Seconds()))
	f := float64(eased)
	var pts [2]Vec2
	for i := range pts {
		pts[i] = Vec2{
			X: s.Start[i].X + (s.End[i].X-s.Start[i].X)*f,
			Y: s.Start[i].Y + (s.End[i].Y-s.Start[i].Y)*f,
		}
	}
	return pts
}

// Pinch returns a copy of the running pinch, if any.
func (c *Controller) Pinch() (PinchZoomSession, bool) {
	if c.pinch == nil {
		return PinchZoomSession{}, false
	}
	return *c.pinch, true
}

// Zoom starts a synthetic pinch about the surface centre. It returns false,
// doing nothing, while another pinch runs, while a click or grab holds
// pointer 0, or before the surface has a size. A scroll drag is cancelled.
func (c *Controller) Zoom(dir ZoomDirection) bool {
	if c.state == nil || c.pinch != nil || c.gestures[streamCursor].open {
		return false
	}
	c.cancelScrollHack()
	s := newPinchZoomSession(dir, c.cfg, c.geom, c.clock.Now())
	c.pinch = s
	c.logger.Debug("pinch start", "direction", dir)

	p0, p1 := s.Start[0], s.Start[1]
	c.emit(streamPinch, PointerEvent{Action: ActionDown, X: p0.X, Y: p0.Y, PointerCount: 1})
	c.emit(streamPinch, PointerEvent{
		PointerID: 1, Action: ActionPointer2Down,
		X: p0.X, Y: p0.Y, X2: p1.X, Y2: p1.Y, PointerCount: 2,
	})
	c.schedulePinchTick(s.StartTime)
	return true
}

func (c *Controller) schedulePinchTick(now time.Time) {
	s := c.pinch
	delay := c.cfg.TickInterval
	if remaining := s.StartTime.Add(s.Duration).Sub(now); remaining < delay {
		delay = remaining
	}
	c.pinchToken = c.sched.ScheduleOnce(delay, c.pinchTick)
}

func (c *Controller) pinchTick() {
	c.pinchToken = 0
	s := c.pinch
	if s == nil {
		return
	}
	now := c.clock.Now()
	pts := s.Points(now)
	p0, p1 := pts[0], pts[1]
	c.emit(streamPinch, PointerEvent{
		Action: ActionMove,
		X:      p0.X, Y: p0.Y, X2: p1.X, Y2: p1.Y, PointerCount: 2,
	})
	if s.Progress(now) < 1 {
		c.schedulePinchTick(now)
		return
	}

	c.emit(streamPinch, PointerEvent{
		PointerID: 1, Action: ActionPointer2Up,
		X: p0.X, Y: p0.Y, X2: p1.X, Y2: p1.Y, PointerCount: 2,
	})
	c.emit(streamPinch, PointerEvent{Action: ActionUp, X: p0.X, Y: p0.Y, X2: p1.X, Y2: p1.Y, PointerCount: 1})
	c.pinch = nil
	c.logger.Debug("pinch end", "direction", s.Direction)
}
