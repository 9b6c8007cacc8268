package dpadcursor

import "testing"

func TestGlyphShape(t *testing.T) {
	g := DefaultCursorGlyph()
	base := CursorView{Position: Vec2{X: 10, Y: 20}, Visible: true, Radius: 8}

	tests := []struct {
		name       string
		view       func(CursorView) CursorView
		wantOK     bool
		wantRadius float32
		wantFill   Color
	}{
		{"normal", func(v CursorView) CursorView { return v }, true, 8, g.Normal},
		{"pressed", func(v CursorView) CursorView { v.Pressed = true; return v }, true, 6, g.Normal},
		{"grab", func(v CursorView) CursorView { v.Mode = ModeGrab; return v }, true, 8, g.Grab},
		{"selection", func(v CursorView) CursorView { v.Mode = ModeTextSelection; return v }, true, 8, g.TextSelection},
		{"hidden", func(v CursorView) CursorView { v.Visible = false; return v }, false, 0, Color{}},
		{"no radius", func(v CursorView) CursorView { v.Radius = 0; return v }, false, 0, Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := g.shape(tt.view(base))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if s.radius != tt.wantRadius {
				t.Errorf("radius = %v, want %v", s.radius, tt.wantRadius)
			}
			if s.fill != tt.wantFill {
				t.Errorf("fill = %+v, want %+v", s.fill, tt.wantFill)
			}
			if s.x != 10 || s.y != 20 {
				t.Errorf("centre = (%v, %v), want (10, 20)", s.x, s.y)
			}
		})
	}
}

func TestColorToRGBA(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 1}.toRGBA()
	if got.R != 255 || got.G != 127 || got.B != 0 || got.A != 255 {
		t.Errorf("toRGBA = %+v", got)
	}
	half := Color{R: 1, G: 1, B: 1, A: 0.5}.toRGBA()
	if half.R != half.A {
		t.Errorf("premultiplied = %+v, want R == A", half)
	}
}

func TestControllerViewRadius(t *testing.T) {
	c, _, _ := newTestController(t, 1100, 600, nil)
	if v := c.View(); v.Radius != 10 {
		t.Errorf("radius = %v, want 10", v.Radius)
	}
}

func TestStatsText(t *testing.T) {
	got := statsText(60, 60, CursorView{Mode: ModeGrab, Position: Vec2{X: 12.4, Y: 7.6}})
	want := "FPS: 60.0\nTPS: 60.0\ngrab (12, 8)"
	if got != want {
		t.Errorf("statsText = %q, want %q", got, want)
	}
}
