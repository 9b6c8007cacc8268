package dpadcursor

import (
	"log/slog"
	"math"
	"os"
)

// SetLogger replaces the Controller's logger. A nil logger discards output.
func (c *Controller) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.logger = l
}

// Logger returns the Controller's logger.
func (c *Controller) Logger() *slog.Logger { return c.logger }

// SetDebugMode enables debug diagnostics: a text logger on stderr at Debug
// level and a state check after every motion tick. Disabling it restores a
// discarding logger.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
	if !enabled {
		c.logger = slog.New(slog.DiscardHandler)
		return
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	c.logger = slog.New(h).With("component", "dpadcursor")
}

// debugCheckState warns when the cursor breaks its bounds or speed limits.
// Only called in debug mode.
func (c *Controller) debugCheckState() {
	st := c.state
	if st == nil {
		return
	}
	if !c.geom.Bounds.Contains(st.Position.X, st.Position.Y) {
		c.logger.Warn("cursor out of bounds", "x", st.Position.X, "y", st.Position.Y,
			"width", c.geom.Width, "height", c.geom.Height)
	}
	if math.Abs(st.Velocity.X) > c.geom.MaxSpeed || math.Abs(st.Velocity.Y) > c.geom.MaxSpeed {
		c.logger.Warn("velocity above max speed", "vx", st.Velocity.X, "vy", st.Velocity.Y,
			"max", c.geom.MaxSpeed)
	}
	if st.Mode != ModeNormal && st.Pressed {
		c.logger.Warn("press held outside normal mode", "mode", st.Mode)
	}
}
