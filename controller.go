package dpadcursor

import (
	"log/slog"
	"time"
)

// Options configures a new Controller. The zero value is valid.
type Options struct {
	// Config defaults to DefaultConfig().
	Config *Config
	// Scheduler defaults to a LoopScheduler started at time.Now(), which must
	// then be advanced by the host (Run does this).
	Scheduler Scheduler
	// Clock defaults to the Scheduler if it implements Clock, else the
	// system clock.
	Clock  Clock
	Logger *slog.Logger

	// Collaborators. Nil fields fall back to the Surface's own capabilities.
	LongPress     LongPressHandler
	CustomScroll  CustomScroller
	TextSelection TextSelectionHandler
	Store         EventStore
}

// Controller owns the virtual cursor: it routes key events, integrates
// motion, synthesizes pointer events and runs scroll and pinch sessions.
// All methods must be called from a single goroutine, the same one that
// runs the Scheduler's callbacks.
type Controller struct {
	cfg   Config
	geom  Geometry
	clock Clock
	sched Scheduler

	logger *slog.Logger
	debug  bool

	surface      Surface
	longPress    LongPressHandler
	customScroll CustomScroller
	textSel      TextSelectionHandler
	store        EventStore

	// state is nil until the surface first reports a size.
	state *CursorState
	keys  keyTracker

	gestures [streamCount]openGesture
	scroll   *ScrollHackSession
	pinch    *PinchZoomSession

	lastTick       time.Time
	tickToken      Token
	disappearToken Token
	longPressToken Token
	pinchToken     Token
	longPressFired bool

	handlers    handlerRegistry
	injectQueue []syntheticKeyEvent
	testRunner  *TestRunner

	// holdUntil is when the last injected hold releases its key.
	holdUntil time.Time
}

// NewController creates a Controller driving surface. The cursor does not
// exist until SetSurfaceSize is called.
func NewController(surface Surface, opts *Options) *Controller {
	if opts == nil {
		opts = &Options{}
	}
	c := &Controller{
		cfg:     DefaultConfig(),
		surface: surface,
		logger:  opts.Logger,
		store:   opts.Store,
	}
	if opts.Config != nil {
		c.cfg = *opts.Config
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	c.sched = opts.Scheduler
	if c.sched == nil {
		c.sched = NewLoopScheduler(time.Now())
	}
	c.clock = opts.Clock
	if c.clock == nil {
		if clk, ok := c.sched.(Clock); ok {
			c.clock = clk
		} else {
			c.clock = systemClock{}
		}
	}

	c.longPress = opts.LongPress
	if h, ok := surface.(LongPressHandler); ok && c.longPress == nil {
		c.longPress = h
	}
	c.customScroll = opts.CustomScroll
	if h, ok := surface.(CustomScroller); ok && c.customScroll == nil {
		c.customScroll = h
	}
	c.textSel = opts.TextSelection
	if h, ok := surface.(TextSelectionHandler); ok && c.textSel == nil {
		c.textSel = h
	}
	return c
}

// Scheduler returns the scheduler running the Controller's timers.
func (c *Controller) Scheduler() Scheduler { return c.sched }

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// Geometry returns the values derived for the current surface size.
func (c *Controller) Geometry() Geometry { return c.geom }

// SetConfig replaces the configuration. Geometry is re-derived for the
// current surface; running sessions keep their start parameters.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg
	if c.state != nil {
		c.applyGeometry()
	}
	c.logger.Debug("config applied", "tick", cfg.TickInterval, "maxSpeed", c.geom.MaxSpeed)
}

// Cursor returns a copy of the cursor state. ok is false before the surface
// has a size or after Detach.
func (c *Controller) Cursor() (state CursorState, ok bool) {
	if c.state == nil {
		return CursorState{}, false
	}
	return *c.state, true
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode {
	if c.state == nil {
		return ModeNormal
	}
	return c.state.Mode
}

// View returns the cursor's current appearance.
func (c *Controller) View() CursorView {
	st := c.state
	if st == nil {
		return CursorView{}
	}
	return CursorView{
		Position: st.Position,
		Mode:     st.Mode,
		Pressed:  st.Pressed,
		Visible:  st.Visible(c.clock.Now(), c.cfg.DisappearTimeout),
		Radius:   c.geom.CursorRadius,
	}
}

// SetSurfaceSize reports the surface's size. The first call creates the
// cursor at the centre; later calls re-clamp it into the new bounds.
func (c *Controller) SetSurfaceSize(width, height int) {
	if c.state == nil {
		c.geom = c.cfg.Derive(width, height)
		c.state = &CursorState{
			Position:     Vec2{X: float64(width) / 2, Y: float64(height) / 2},
			LastActivity: c.clock.Now(),
		}
		c.state.Position.X, c.state.Position.Y = c.geom.Bounds.Clamp(c.state.Position.X, c.state.Position.Y)
		c.armDisappear()
		c.logger.Debug("cursor attached", "width", width, "height", height)
		c.redraw()
		return
	}
	c.geom = c.cfg.Derive(width, height)
	c.applyGeometry()
}

func (c *Controller) applyGeometry() {
	c.geom = c.cfg.Derive(int(c.geom.Width), int(c.geom.Height))
	st := c.state
	st.Position.X, st.Position.Y = c.geom.Bounds.Clamp(st.Position.X, st.Position.Y)
	st.Velocity.X = clamp(st.Velocity.X, -c.geom.MaxSpeed, c.geom.MaxSpeed)
	st.Velocity.Y = clamp(st.Velocity.Y, -c.geom.MaxSpeed, c.geom.MaxSpeed)
	c.cancelScrollHack()
	c.redraw()
}

// Detach discards the cursor when the surface goes away. Timers and
// sessions are dropped without emitting further events.
func (c *Controller) Detach() {
	c.sched.Cancel(c.tickToken)
	c.sched.Cancel(c.disappearToken)
	c.sched.Cancel(c.longPressToken)
	c.sched.Cancel(c.pinchToken)
	c.tickToken, c.disappearToken, c.longPressToken, c.pinchToken = 0, 0, 0, 0
	c.keys.reset()
	c.gestures = [streamCount]openGesture{}
	c.scroll = nil
	c.pinch = nil
	c.longPressFired = false
	c.state = nil
	c.logger.Debug("cursor detached")
}

// Reset forgets held keys and stops motion, closing any press or scroll drag
// with a cancel. The mode is kept. Hosts call it when input focus is lost.
func (c *Controller) Reset() {
	st := c.state
	if st == nil {
		return
	}
	c.keys.reset()
	c.longPressFired = false
	st.Direction = Direction{}
	st.Velocity = Vec2{}
	c.cancelPress()
	c.cancelScrollHack()
	c.redraw()
}

// --- Mode commands ---

// EnterGrab switches Normal to Grab: any press in flight is cancelled and
// pointer 0 is held down at the cursor so motion drags content. Returns
// false outside Normal mode or while a pinch runs.
func (c *Controller) EnterGrab() bool {
	st := c.state
	if st == nil || st.Mode != ModeNormal || c.pinch != nil {
		return false
	}
	c.cancelPress()
	c.cancelScrollHack()
	c.setMode(ModeGrab)
	c.pointerDown(streamCursor, st.Position)
	return true
}

// ExitGrab releases the grab at the cursor and returns to Normal. In any
// other mode it does nothing and returns false.
func (c *Controller) ExitGrab() bool {
	st := c.state
	if st == nil || st.Mode != ModeGrab {
		return false
	}
	c.setMode(ModeNormal)
	c.pointerUp(streamCursor, st.Position)
	c.touch()
	return true
}

// EnterTextSelection switches Normal to TextSelection and reports the
// selection start at the cursor. Returns false outside Normal mode.
func (c *Controller) EnterTextSelection() bool {
	st := c.state
	if st == nil || st.Mode != ModeNormal {
		return false
	}
	c.cancelPress()
	c.cancelScrollHack()
	c.setMode(ModeTextSelection)
	if c.textSel != nil {
		x, y := st.intPosition()
		c.textSel.TextSelectionStart(x, y)
	}
	return true
}

// ExitTextSelection leaves TextSelection, cancelling or confirming the
// selection. Returns false outside TextSelection mode.
func (c *Controller) ExitTextSelection(cancel bool) bool {
	st := c.state
	if st == nil || st.Mode != ModeTextSelection {
		return false
	}
	c.setMode(ModeNormal)
	if c.textSel != nil {
		if cancel {
			c.textSel.TextSelectionCancel()
		} else {
			x, y := st.intPosition()
			c.textSel.TextSelectionEnd(x, y)
		}
	}
	c.touch()
	return true
}

func (c *Controller) setMode(to Mode) {
	from := c.state.Mode
	if from == to {
		return
	}
	c.state.Mode = to
	c.logger.Debug("mode change", "from", from, "to", to)
	for _, h := range c.handlers.mode {
		h.fn(from, to)
	}
	c.redraw()
}

// --- Key routing ---

// HandleKey routes a raw key event. It returns false when the key was not
// consumed, so the host may act on it (e.g. navigate back).
func (c *Controller) HandleKey(ev KeyEvent) bool {
	if c.state == nil {
		return false
	}
	switch {
	case ev.Key.isBack():
		return c.handleBack(ev)
	case ev.Key.isActivation():
		return c.handleActivation(ev)
	case ev.Key.isDirectional():
		return c.handleDirection(ev)
	}
	return false
}

func (c *Controller) handleBack(ev KeyEvent) bool {
	mode := c.state.Mode
	if ev.Action == KeyActionDown {
		return mode != ModeNormal
	}
	switch mode {
	case ModeGrab:
		c.ExitGrab()
		return true
	case ModeTextSelection:
		c.ExitTextSelection(true)
		return true
	}
	return false
}

func (c *Controller) handleDirection(ev KeyEvent) bool {
	st := c.state
	dx, dy, hasX, hasY := ev.Key.direction()
	if ev.Action == KeyActionDown {
		if c.keys.isTracking(ev.Key) {
			return true
		}
		c.keys.startTracking(ev.Key, false)
		if hasX {
			st.Direction.X = dx
		}
		if hasY {
			st.Direction.Y = dy
		}
		c.touch()
		c.startMotion()
		return true
	}

	c.keys.handleUp(ev.Key)
	if hasX {
		st.Direction.X = 0
		st.Velocity.X = 0
	}
	if hasY {
		st.Direction.Y = 0
		st.Velocity.Y = 0
	}
	c.cancelScrollHack()
	return true
}

func (c *Controller) handleActivation(ev KeyEvent) bool {
	st := c.state
	if ev.Action == KeyActionDown {
		switch st.Mode {
		case ModeGrab:
			// The grab ends; the key itself is left for the host.
			c.ExitGrab()
			return false
		case ModeTextSelection:
			return true
		}
		if c.keys.isTracking(ev.Key) {
			return true
		}
		// A pinch owns pointer 0; the key only reveals the cursor.
		if c.pinch != nil || !st.Visible(c.clock.Now(), c.cfg.DisappearTimeout) {
			c.keys.startTracking(ev.Key, true)
			c.touch()
			return true
		}
		c.keys.startTracking(ev.Key, false)
		c.touch()
		c.press()
		return true
	}

	switch st.Mode {
	case ModeGrab:
		return true
	case ModeTextSelection:
		c.keys.handleUp(ev.Key)
		c.ExitTextSelection(false)
		return true
	}
	entry, ok := c.keys.handleUp(ev.Key)
	if !ok {
		if c.longPressFired {
			c.longPressFired = false
			return true
		}
		return false
	}
	c.touch()
	if entry.revealOnly {
		return true
	}
	c.release()
	return true
}

// press starts a synthetic click gesture at the cursor. A scroll drag
// holding pointer 0 is cancelled first.
func (c *Controller) press() {
	st := c.state
	c.cancelScrollHack()
	st.Pressed = true
	c.longPressFired = false
	c.pointerDown(streamCursor, st.Position)
	c.sched.Cancel(c.longPressToken)
	c.longPressToken = c.sched.ScheduleOnce(c.cfg.LongPressTimeout+c.cfg.LongPressGrace, c.fireLongPress)
	c.redraw()
}

// release ends the click gesture with an up.
func (c *Controller) release() {
	st := c.state
	c.sched.Cancel(c.longPressToken)
	c.longPressToken = 0
	if !st.Pressed {
		return
	}
	st.Pressed = false
	c.pointerUp(streamCursor, st.Position)
	c.redraw()
}

// cancelPress ends a click gesture in flight with a cancel.
func (c *Controller) cancelPress() {
	st := c.state
	c.sched.Cancel(c.longPressToken)
	c.longPressToken = 0
	if !st.Pressed {
		return
	}
	st.Pressed = false
	c.pointerCancel(streamCursor, st.Position)
	c.redraw()
}

func (c *Controller) fireLongPress() {
	c.longPressToken = 0
	st := c.state
	if st == nil {
		return
	}
	c.keys.reset()
	c.longPressFired = true
	x, y := st.intPosition()
	c.logger.Debug("long press", "x", x, "y", y)
	if c.longPress != nil {
		c.longPress.LongPress(x, y)
	}
	c.cancelPress()
}

// touch records activity, keeping the cursor visible for another
// DisappearTimeout.
func (c *Controller) touch() {
	st := c.state
	wasVisible := st.Visible(c.clock.Now(), c.cfg.DisappearTimeout)
	st.LastActivity = c.clock.Now()
	if c.tickToken == 0 {
		c.armDisappear()
	}
	if !wasVisible {
		c.redraw()
	}
}

func (c *Controller) armDisappear() {
	c.sched.Cancel(c.disappearToken)
	c.disappearToken = c.sched.ScheduleOnce(c.cfg.DisappearTimeout, c.fireDisappear)
}

func (c *Controller) fireDisappear() {
	c.disappearToken = 0
	if c.state == nil || c.state.Mode != ModeNormal {
		return
	}
	c.logger.Debug("cursor disappeared")
	c.redraw()
}

func (c *Controller) redraw() {
	if len(c.handlers.redraw) == 0 {
		return
	}
	v := c.View()
	for _, h := range c.handlers.redraw {
		h.fn(v)
	}
}

func (s *CursorState) intPosition() (int, int) {
	return int(s.Position.X), int(s.Position.Y)
}
