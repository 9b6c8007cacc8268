package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/dpadcursor"
	"github.com/phanxgames/dpadcursor/ecs"
)

var demoOpts struct {
	width, height int
	showFPS       bool
	script        string
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open a window with a pointer-only tile page driven by the D-pad",
	Long: `Arrows or the gamepad D-pad move the cursor, Space/Enter clicks and a long
hold flags a tile. Z and X pinch in and out, G toggles grab, T toggles text
selection and N toggles native scrolling so edge motion falls back to a
synthetic drag. Escape leaves grab or selection, then quits.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&demoOpts.width, "width", 1200, "window width")
	demoCmd.Flags().IntVar(&demoOpts.height, "height", 800, "window height")
	demoCmd.Flags().BoolVar(&demoOpts.showFPS, "fps", false, "show the stats overlay")
	demoCmd.Flags().StringVar(&demoOpts.script, "script", "", "JSON test script to play inside the window")
}

// eventCounter tallies pointer events published into a donburi world.
type eventCounter struct {
	world  donburi.World
	counts [dpadcursor.ActionPointer2Up + 1]int
	modes  []string
}

func newEventCounter(world donburi.World) *eventCounter {
	ec := &eventCounter{world: world}
	ecs.PointerEventType.Subscribe(world, func(w donburi.World, ev dpadcursor.PointerEvent) {
		if int(ev.Action) < len(ec.counts) {
			ec.counts[ev.Action]++
		}
	})
	ecs.ModeChangeEventType.Subscribe(world, func(w donburi.World, ev ecs.ModeChange) {
		ec.modes = append(ec.modes, ev.To.String())
		if len(ec.modes) > 4 {
			ec.modes = ec.modes[1:]
		}
	})
	return ec
}

func (ec *eventCounter) process() {
	ecs.PointerEventType.ProcessEvents(ec.world)
	ecs.ModeChangeEventType.ProcessEvents(ec.world)
}

func (ec *eventCounter) summary() string {
	var b strings.Builder
	for a := dpadcursor.ActionDown; int(a) < len(ec.counts); a++ {
		if ec.counts[a] > 0 {
			fmt.Fprintf(&b, "%s:%d ", a, ec.counts[a])
		}
	}
	return b.String()
}

// demoScreen draws the page and a status line over it.
type demoScreen struct {
	page    *page
	c       *dpadcursor.Controller
	counter *eventCounter
	binding *ecs.Binding
}

func (d *demoScreen) Draw(screen *ebiten.Image) {
	d.page.Draw(screen)
	view := ecs.CursorView.Get(d.counter.world.Entry(d.binding.Entity))
	native := "on"
	if !d.page.nativeScroll {
		native = "off"
	}
	status := fmt.Sprintf("mode %s  cursor (%.0f, %.0f)  scale %.2f  native scroll %s\n%s\nmodes: %s",
		view.Mode, view.Position.X, view.Position.Y, d.page.scale, native,
		d.counter.summary(), strings.Join(d.counter.modes, " > "))
	if s, ok := d.c.ScrollHack(); ok {
		status += fmt.Sprintf("\nscroll drag: %d deltas", s.Deltas)
	}
	ebitenutil.DebugPrintAt(screen, status, 8, screen.Bounds().Dy()-56)
}

func (d *demoScreen) hotkeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		d.c.Zoom(dpadcursor.ZoomIn)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		d.c.Zoom(dpadcursor.ZoomOut)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		if !d.c.EnterGrab() {
			d.c.ExitGrab()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		if !d.c.EnterTextSelection() {
			d.c.ExitTextSelection(false)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		d.page.nativeScroll = !d.page.nativeScroll
	}
	d.counter.process()
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
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

	world := donburi.NewWorld()
	pg := newPage(logger)
	c := dpadcursor.NewController(pg, &dpadcursor.Options{
		Config: &cfg,
		Logger: logger,
		Store:  ecs.NewDonburiStore(world),
	})
	if debug {
		c.SetDebugMode(true)
		c.SetLogger(logger)
	}
	binding := ecs.Bind(world, c)
	defer binding.Close()

	if demoOpts.script != "" {
		data, err := os.ReadFile(demoOpts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := dpadcursor.LoadTestScript(data)
		if err != nil {
			return err
		}
		c.SetTestRunner(runner)
	}

	screen := &demoScreen{page: pg, c: c, counter: newEventCounter(world), binding: binding}
	return dpadcursor.Run(c, dpadcursor.RunConfig{
		Title:      "dpadcursor demo",
		Width:      demoOpts.width,
		Height:     demoOpts.height,
		ShowFPS:    demoOpts.showFPS,
		ClearColor: dpadcursor.Color{R: 0.118, G: 0.118, B: 0.157, A: 1},
		Content:    screen,
		Configs:    configs,
		OnUnhandledKey: func(ev dpadcursor.KeyEvent) error {
			isBack := ev.Key == dpadcursor.KeyBack || ev.Key == dpadcursor.KeyEscape
			if isBack && ev.Action == dpadcursor.KeyActionUp {
				return ebiten.Termination
			}
			return nil
		},
		OnUpdate: screen.hotkeys,
	})
}
