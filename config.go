package dpadcursor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// ErrInvalidConfig is wrapped by every error Config.Validate reports.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the engine. Geometry-dependent values are
// derived from it once per surface size by Derive.
type Config struct {
	// TickInterval is the delay between motion and gesture ticks.
	TickInterval time.Duration
	// Acceleration is added to velocity per millisecond of held direction.
	Acceleration float64
	// MaxSpeed caps per-axis velocity in units per tick. Zero derives it
	// from the surface width as width / MaxSpeedDivisor.
	MaxSpeed        float64
	MaxSpeedDivisor float64
	// SnapThreshold is the speed below which velocity snaps to exactly 0.
	SnapThreshold float64

	// DisappearTimeout is how long the cursor stays visible in Normal mode
	// without activity.
	DisappearTimeout time.Duration
	// LongPressTimeout is the platform long-press threshold. The engine
	// waits LongPressGrace longer so content handlers can claim it first.
	LongPressTimeout time.Duration
	LongPressGrace   time.Duration

	// ScrollStartPadding is the distance from an edge within which motion
	// toward that edge requests a scroll.
	ScrollStartPadding float64
	// ScrollHackPadding insets the rectangle a synthetic scroll drag may use.
	ScrollHackPadding float64
	// ScrollHackRetry re-applies a delta once after a drag session that had
	// already scrolled runs out of room.
	ScrollHackRetry bool

	// ZoomDuration is the length of a synthetic pinch.
	ZoomDuration time.Duration
	// ZoomFactor sets the pinch span as a fraction of the surface's shorter
	// side. ZoomNearRatio is the closed span relative to the open one.
	ZoomFactor    float64
	ZoomNearRatio float64
	// ZoomEasing names the interpolation curve; see Easing.
	ZoomEasing string

	// CursorRadiusDivisor sets the glyph radius as width / divisor.
	CursorRadiusDivisor float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TickInterval:        16 * time.Millisecond,
		Acceleration:        0.05,
		MaxSpeedDivisor:     25,
		SnapThreshold:       0.1,
		DisappearTimeout:    5 * time.Second,
		LongPressTimeout:    500 * time.Millisecond,
		LongPressGrace:      200 * time.Millisecond,
		ScrollStartPadding:  100,
		ScrollHackPadding:   300,
		ZoomDuration:        time.Second,
		ZoomFactor:          0.8,
		ZoomNearRatio:       0.25,
		ZoomEasing:          "linear",
		CursorRadiusDivisor: 110,
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"quad-in-out":  ease.InOutQuad,
	"cubic-in-out": ease.InOutCubic,
	"sine-in-out":  ease.InOutSine,
}

// Easing returns the interpolation function named by ZoomEasing, falling back
// to linear for unknown names.
func (c Config) Easing() ease.TweenFunc {
	if fn, ok := easings[c.ZoomEasing]; ok {
		return fn
	}
	return ease.Linear
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.TickInterval <= 0 {
		bad("tick_interval must be positive, got %v", c.TickInterval)
	}
	if c.Acceleration <= 0 {
		bad("acceleration must be positive, got %v", c.Acceleration)
	}
	if c.MaxSpeed < 0 {
		bad("max_speed must not be negative, got %v", c.MaxSpeed)
	}
	if c.MaxSpeed == 0 && c.MaxSpeedDivisor <= 0 {
		bad("max_speed_divisor must be positive when max_speed is derived, got %v", c.MaxSpeedDivisor)
	}
	if c.SnapThreshold < 0 {
		bad("snap_threshold must not be negative, got %v", c.SnapThreshold)
	}
	if c.DisappearTimeout <= 0 {
		bad("disappear_timeout must be positive, got %v", c.DisappearTimeout)
	}
	if c.LongPressTimeout <= 0 {
		bad("long_press_timeout must be positive, got %v", c.LongPressTimeout)
	}
	if c.LongPressGrace < 0 {
		bad("long_press_grace must not be negative, got %v", c.LongPressGrace)
	}
	if c.ScrollStartPadding < 0 {
		bad("scroll_start_padding must not be negative, got %v", c.ScrollStartPadding)
	}
	if c.ScrollHackPadding < 0 {
		bad("scroll_hack_padding must not be negative, got %v", c.ScrollHackPadding)
	}
	if c.ZoomDuration <= 0 {
		bad("zoom_duration must be positive, got %v", c.ZoomDuration)
	}
	if c.ZoomFactor <= 0 || c.ZoomFactor > 1 {
		bad("zoom_factor must be in (0, 1], got %v", c.ZoomFactor)
	}
	if c.ZoomNearRatio <= 0 || c.ZoomNearRatio >= 1 {
		bad("zoom_near_ratio must be in (0, 1), got %v", c.ZoomNearRatio)
	}
	if _, ok := easings[c.ZoomEasing]; !ok {
		bad("unknown zoom_easing %q", c.ZoomEasing)
	}
	if c.CursorRadiusDivisor <= 0 {
		bad("cursor_radius_divisor must be positive, got %v", c.CursorRadiusDivisor)
	}
	return errors.Join(errs...)
}

// Geometry holds the values derived from a Config for one surface size.
type Geometry struct {
	Width, Height float64
	MaxSpeed      float64
	CursorRadius  float64
	// Bounds is the rectangle the cursor position is clamped to:
	// [0, width-1] x [0, height-1].
	Bounds Rect
	// ScrollHackBounds is Bounds inset by ScrollHackPadding, shrunk per axis
	// so it never inverts on small surfaces.
	ScrollHackBounds Rect
}

// Derive computes the geometry for a surface of the given size.
func (c Config) Derive(width, height int) Geometry {
	w := math.Max(float64(width), 1)
	h := math.Max(float64(height), 1)
	g := Geometry{
		Width:    w,
		Height:   h,
		MaxSpeed: c.MaxSpeed,
		Bounds:   Rect{Width: w - 1, Height: h - 1},
	}
	if g.MaxSpeed == 0 && c.MaxSpeedDivisor > 0 {
		g.MaxSpeed = w / c.MaxSpeedDivisor
	}
	if c.CursorRadiusDivisor > 0 {
		g.CursorRadius = w / c.CursorRadiusDivisor
	}
	padX := math.Min(c.ScrollHackPadding, (w-1)/2)
	padY := math.Min(c.ScrollHackPadding, (h-1)/2)
	g.ScrollHackBounds = Rect{
		X:      padX,
		Y:      padY,
		Width:  w - 1 - 2*padX,
		Height: h - 1 - 2*padY,
	}
	return g
}
