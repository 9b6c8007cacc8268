// Package ossurface drives the operating system's pointer from a
// dpadcursor.Controller, so a remote can operate an ordinary desktop.
package ossurface

import (
	"log/slog"
	"math"

	"github.com/go-vgo/robotgo"

	"github.com/phanxgames/dpadcursor"
)

// Backend is the OS input injection the Surface needs.
type Backend interface {
	Move(x, y int)
	MouseDown()
	MouseUp()
	RightClick()
	// Scroll turns the wheel by whole notches: x > 0 right, y > 0 up.
	Scroll(x, y int)
	ScreenSize() (int, int)
}

type robotgoBackend struct{}

func (robotgoBackend) Move(x, y int)          { robotgo.Move(x, y) }
func (robotgoBackend) MouseDown()             { robotgo.MouseDown("left") }
func (robotgoBackend) MouseUp()               { robotgo.MouseUp("left") }
func (robotgoBackend) RightClick()            { robotgo.Click("right") }
func (robotgoBackend) Scroll(x, y int)        { robotgo.Scroll(x, y) }
func (robotgoBackend) ScreenSize() (int, int) { return robotgo.GetScreenSize() }

// DefaultNotch is the scroll distance, in surface units, of one wheel notch.
const DefaultNotch = 40

// Surface maps synthesized pointer events onto the OS pointer. Coordinates
// are scaled from the Controller's surface size to the screen.
//
// The OS has a single pointer and no cancel, so a down is only pressed once
// the gesture moves or ends with an up; a cancelled tap never reaches the OS,
// and pinch gestures are dropped entirely. A long press becomes a right click.
type Surface struct {
	backend       Backend
	width, height int
	notch         float64
	logger        *slog.Logger

	pendingDown bool
	held        bool
	pinching    bool
	scrollAcc   dpadcursor.Vec2
}

// New returns a Surface driving the real pointer through robotgo, with a
// Controller surface the size of the screen.
func New(logger *slog.Logger) *Surface {
	b := robotgoBackend{}
	w, h := b.ScreenSize()
	return NewWithBackend(b, w, h, logger)
}

// NewWithBackend returns a Surface for a Controller surface of width x
// height, injecting through b.
func NewWithBackend(b Backend, width, height int, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Surface{backend: b, width: width, height: height, notch: DefaultNotch, logger: logger}
}

// Size returns the Controller surface size to report with SetSurfaceSize.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// SetNotch sets the scroll distance of one wheel notch.
func (s *Surface) SetNotch(units float64) {
	if units > 0 {
		s.notch = units
	}
}

// toScreen scales surface coordinates to the local screen if sizes differ.
func (s *Surface) toScreen(x, y float64) (int, int) {
	sw, sh := s.backend.ScreenSize()
	if s.width > 0 && s.height > 0 && (s.width != sw || s.height != sh) {
		x = x * float64(sw) / float64(s.width)
		y = y * float64(sh) / float64(s.height)
	}
	return int(math.Round(x)), int(math.Round(y))
}

func (s *Surface) DispatchPointerEvent(ev dpadcursor.PointerEvent) {
	switch ev.Action {
	case dpadcursor.ActionPointer2Down:
		s.pinching = true
		s.pendingDown = false
		return
	case dpadcursor.ActionPointer2Up:
		return
	}
	if s.pinching {
		if ev.Action == dpadcursor.ActionUp || ev.Action == dpadcursor.ActionCancel {
			s.pinching = false
		}
		return
	}

	x, y := s.toScreen(ev.X, ev.Y)
	s.backend.Move(x, y)
	switch ev.Action {
	case dpadcursor.ActionDown:
		s.pendingDown = true
	case dpadcursor.ActionMove:
		s.flushDown()
	case dpadcursor.ActionUp:
		s.flushDown()
		s.release()
	case dpadcursor.ActionCancel:
		s.pendingDown = false
		s.release()
	}
}

func (s *Surface) flushDown() {
	if !s.pendingDown {
		return
	}
	s.pendingDown = false
	s.held = true
	s.backend.MouseDown()
}

func (s *Surface) release() {
	if !s.held {
		return
	}
	s.held = false
	s.backend.MouseUp()
}

// CanScroll always accepts: the OS wheel scrolls whatever is under the
// pointer.
func (s *Surface) CanScroll(dx, dy float64) bool { return true }

// ScrollBy accumulates the delta and turns the wheel by whole notches.
func (s *Surface) ScrollBy(dx, dy float64) {
	s.scrollAcc.X += dx
	s.scrollAcc.Y += dy
	nx := math.Trunc(s.scrollAcc.X / s.notch)
	ny := math.Trunc(s.scrollAcc.Y / s.notch)
	if nx == 0 && ny == 0 {
		return
	}
	s.scrollAcc.X -= nx * s.notch
	s.scrollAcc.Y -= ny * s.notch
	// Positive dy reveals content below; the wheel scrolls down with y < 0.
	s.backend.Scroll(int(nx), -int(ny))
	s.logger.Debug("os scroll", "x", int(nx), "y", -int(ny))
}

// LongPress right-clicks at the pointer.
func (s *Surface) LongPress(x, y int) {
	s.logger.Debug("os right click", "x", x, "y", y)
	s.backend.RightClick()
}
