package dpadcursor

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// CursorGlyph draws the cursor as a filled disc with a ring, tinted per mode.
type CursorGlyph struct {
	Normal        Color
	Grab          Color
	TextSelection Color
	Ring          Color
	// RingWidth is the ring's stroke width in pixels.
	RingWidth float64
	// PressedScale shrinks the disc while a press is held.
	PressedScale float64
}

// DefaultCursorGlyph returns the stock cursor look.
func DefaultCursorGlyph() CursorGlyph {
	return CursorGlyph{
		Normal:        Color{R: 1, G: 1, B: 1, A: 0.85},
		Grab:          Color{R: 0.3, G: 0.7, B: 0.9, A: 0.9},
		TextSelection: Color{R: 1, G: 0.75, B: 0.2, A: 0.9},
		Ring:          Color{R: 0, G: 0, B: 0, A: 0.6},
		RingWidth:     2,
		PressedScale:  0.75,
	}
}

type glyphShape struct {
	x, y, radius float32
	fill, ring   Color
	ringWidth    float32
}

// shape resolves a view into draw parameters. ok is false when nothing
// should be drawn.
func (g CursorGlyph) shape(v CursorView) (s glyphShape, ok bool) {
	if !v.Visible || v.Radius <= 0 {
		return glyphShape{}, false
	}
	r := v.Radius
	if v.Pressed && g.PressedScale > 0 {
		r *= g.PressedScale
	}
	fill := g.Normal
	switch v.Mode {
	case ModeGrab:
		fill = g.Grab
	case ModeTextSelection:
		fill = g.TextSelection
	}
	return glyphShape{
		x:         float32(v.Position.X),
		y:         float32(v.Position.Y),
		radius:    float32(r),
		fill:      fill,
		ring:      g.Ring,
		ringWidth: float32(g.RingWidth),
	}, true
}

// Draw renders the glyph for v onto dst.
func (g CursorGlyph) Draw(dst *ebiten.Image, v CursorView) {
	s, ok := g.shape(v)
	if !ok {
		return
	}
	vector.DrawFilledCircle(dst, s.x, s.y, s.radius, s.fill.toRGBA(), true)
	if s.ringWidth > 0 {
		vector.StrokeCircle(dst, s.x, s.y, s.radius, s.ringWidth, s.ring.toRGBA(), true)
	}
}
