package dpadcursor

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = 0
	cfg.ZoomFactor = 2
	cfg.ZoomEasing = "bounce"

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	for _, field := range []string{"tick_interval", "zoom_factor", "zoom_easing"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative acceleration", func(c *Config) { c.Acceleration = -1 }},
		{"negative max speed", func(c *Config) { c.MaxSpeed = -1 }},
		{"zero divisor when derived", func(c *Config) { c.MaxSpeedDivisor = 0 }},
		{"zero disappear", func(c *Config) { c.DisappearTimeout = 0 }},
		{"negative grace", func(c *Config) { c.LongPressGrace = -time.Millisecond }},
		{"negative padding", func(c *Config) { c.ScrollHackPadding = -1 }},
		{"near ratio one", func(c *Config) { c.ZoomNearRatio = 1 }},
		{"zero zoom duration", func(c *Config) { c.ZoomDuration = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	g := DefaultConfig().Derive(1200, 800)
	if g.MaxSpeed != 48 {
		t.Errorf("MaxSpeed = %v, want 48", g.MaxSpeed)
	}
	if g.Bounds != (Rect{Width: 1199, Height: 799}) {
		t.Errorf("Bounds = %+v", g.Bounds)
	}
	if want := (Rect{X: 300, Y: 300, Width: 599, Height: 199}); g.ScrollHackBounds != want {
		t.Errorf("ScrollHackBounds = %+v, want %+v", g.ScrollHackBounds, want)
	}
	if !near(g.CursorRadius, 1200.0/110) {
		t.Errorf("CursorRadius = %v", g.CursorRadius)
	}
}

func TestDeriveExplicitMaxSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSpeed = 10
	if g := cfg.Derive(1200, 800); g.MaxSpeed != 10 {
		t.Errorf("MaxSpeed = %v, want 10", g.MaxSpeed)
	}
}

func TestDeriveSmallSurfaceInsetNeverInverts(t *testing.T) {
	g := DefaultConfig().Derive(101, 51)
	b := g.ScrollHackBounds
	if b.Width < 0 || b.Height < 0 {
		t.Fatalf("inset rect inverted: %+v", b)
	}
	if b.X != 50 || b.Y != 25 {
		t.Errorf("inset origin = (%v, %v), want the centre (50, 25)", b.X, b.Y)
	}
}

func TestEasingFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ZoomEasing = "nope"
	if got := cfg.Easing()(0.5, 0, 1, 1); got != 0.5 {
		t.Errorf("fallback easing(0.5) = %v, want linear 0.5", got)
	}
	cfg.ZoomEasing = "quad-in-out"
	if got := cfg.Easing()(0.25, 0, 1, 1); got == 0.25 {
		t.Error("quad-in-out should not be linear")
	}
}
