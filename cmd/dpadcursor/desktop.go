package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/spf13/cobra"

	"github.com/phanxgames/dpadcursor"
	"github.com/phanxgames/dpadcursor/internal/ossurface"
)

var desktopOpts struct {
	notch float64
}

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Move the operating system pointer with the D-pad",
	Long: `Opens a small control window and drives the real mouse pointer from the
keys or gamepad it receives. The window must keep focus. Edge motion turns the
scroll wheel, a long hold right-clicks and Escape in normal mode quits.`,
	Args: cobra.NoArgs,
	RunE: runDesktop,
}

func init() {
	desktopCmd.Flags().Float64Var(&desktopOpts.notch, "notch", ossurface.DefaultNotch, "scroll distance of one wheel notch")
}

type desktopPanel struct {
	c *dpadcursor.Controller
}

func (p desktopPanel) Draw(screen *ebiten.Image) {
	v := p.c.View()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("dpadcursor desktop\nmode %s\npointer (%.0f, %.0f)",
		v.Mode, v.Position.X, v.Position.Y), 8, 8)
}

func runDesktop(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	configs, stop, err := watchConfig(logger)
	if err != nil {
		return err
	}
	defer stop()

	surface := ossurface.New(logger)
	surface.SetNotch(desktopOpts.notch)
	c := dpadcursor.NewController(surface, &dpadcursor.Options{Config: &cfg, Logger: logger})
	if debug {
		c.SetDebugMode(true)
		c.SetLogger(logger)
	}
	w, h := surface.Size()
	c.SetSurfaceSize(w, h)
	logger.Info("driving desktop pointer", "width", w, "height", h)

	return dpadcursor.Run(c, dpadcursor.RunConfig{
		Title:           "dpadcursor desktop",
		Width:           320,
		Height:          96,
		ClearColor:      dpadcursor.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		Content:         desktopPanel{c: c},
		HideGlyph:       true,
		DetachedSurface: true,
		Configs:         configs,
		OnUnhandledKey: func(ev dpadcursor.KeyEvent) error {
			if ev.Key == dpadcursor.KeyEscape && ev.Action == dpadcursor.KeyActionUp {
				return ebiten.Termination
			}
			return nil
		},
	})
}
