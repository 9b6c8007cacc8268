package dpadcursor

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Drawer renders content beneath the cursor glyph.
type Drawer interface {
	Draw(screen *ebiten.Image)
}

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	ClearColor    Color
	// Content is drawn each frame before the cursor. Optional.
	Content Drawer
	// Glyph defaults to DefaultCursorGlyph.
	Glyph     *CursorGlyph
	HideGlyph bool
	// DetachedSurface keeps Run from reporting the window size; the caller
	// sets the surface size itself, e.g. when driving the OS desktop.
	DetachedSurface bool
	// Configs, when set, is drained each frame and applied with SetConfig.
	Configs <-chan Config
	// OnUnhandledKey receives key events the Controller did not consume.
	// Returning ebiten.Termination ends Run without error.
	OnUnhandledKey func(KeyEvent) error
	// OnUpdate runs once per frame after input has been processed.
	OnUpdate func() error
}

// Run opens a window and drives c from the ebiten loop: keyboard and gamepad
// input is polled each frame, the Controller's scheduler is advanced by one
// frame's worth of time, and the cursor glyph is drawn over cfg.Content.
// The window size is reported to c through SetSurfaceSize.
func Run(c *Controller, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	glyph := DefaultCursorGlyph()
	if cfg.Glyph != nil {
		glyph = *cfg.Glyph
	}
	g := &game{
		c:      c,
		cfg:    cfg,
		poller: NewInputPoller(),
		glyph:  glyph,
	}
	g.stepper, _ = c.Scheduler().(Stepper)
	if cfg.ShowFPS {
		g.overlay = newStatsOverlay()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

type game struct {
	c       *Controller
	cfg     RunConfig
	poller  *InputPoller
	glyph   CursorGlyph
	overlay *statsOverlay
	stepper Stepper
	w, h    int
}

func (g *game) frame() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

func (g *game) Update() error {
	if g.cfg.Configs != nil {
		select {
		case cfg := <-g.cfg.Configs:
			g.c.SetConfig(cfg)
		default:
		}
	}
	if g.stepper != nil {
		g.stepper.AdvanceBy(g.frame())
	}
	g.c.Update()
	for _, ev := range g.poller.Poll(g.c) {
		if g.cfg.OnUnhandledKey == nil {
			continue
		}
		if err := g.cfg.OnUnhandledKey(ev); err != nil {
			return err
		}
	}
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	if g.cfg.Content != nil {
		g.cfg.Content.Draw(screen)
	}
	v := g.c.View()
	if !g.cfg.HideGlyph {
		g.glyph.Draw(screen, v)
	}
	if g.overlay != nil {
		g.overlay.draw(screen, g.frame().Seconds(), v)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.cfg.DetachedSurface && (outsideWidth != g.w || outsideHeight != g.h) {
		g.w, g.h = outsideWidth, outsideHeight
		g.c.SetSurfaceSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
