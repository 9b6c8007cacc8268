package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dpadcursor"
)

var replayOpts struct {
	width, height int
	frameMs       int
	maxFrames     int
	nativeScroll  bool
	jsonOut       bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Play a key script headless and print the synthesized pointer stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.IntVar(&replayOpts.width, "width", 1200, "surface width")
	f.IntVar(&replayOpts.height, "height", 800, "surface height")
	f.IntVar(&replayOpts.frameMs, "frame-ms", 16, "simulated frame length in milliseconds")
	f.IntVar(&replayOpts.maxFrames, "max-frames", 100000, "give up after this many frames")
	f.BoolVar(&replayOpts.nativeScroll, "native-scroll", false, "let the surface scroll natively instead of falling back to a drag")
	f.BoolVar(&replayOpts.jsonOut, "json", false, "print events as JSON lines")
}

var replayEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// traceRecord is one line of replay output.
type traceRecord struct {
	At     float64 `json:"at"`
	Kind   string  `json:"kind"`
	Action string  `json:"action,omitempty"`
	ID     int     `json:"id,omitempty"`
	Count  int     `json:"count,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
}

// traceSurface writes every notification it receives to out.
type traceSurface struct {
	out    io.Writer
	clock  dpadcursor.Clock
	native bool
	enc    *json.Encoder
	err    error
}

func newTraceSurface(out io.Writer, clock dpadcursor.Clock, native, jsonOut bool) *traceSurface {
	s := &traceSurface{out: out, clock: clock, native: native}
	if jsonOut {
		s.enc = json.NewEncoder(out)
	}
	return s
}

func (s *traceSurface) since() float64 {
	return s.clock.Now().Sub(replayEpoch).Seconds()
}

func (s *traceSurface) write(r traceRecord) {
	if s.err != nil {
		return
	}
	if s.enc != nil {
		s.err = s.enc.Encode(r)
		return
	}
	line := fmt.Sprintf("%8.3f %-8s %-14s (%.1f, %.1f)", r.At, r.Kind, r.Action, r.X, r.Y)
	if r.Count == 2 {
		line += fmt.Sprintf(" (%.1f, %.1f)", r.X2, r.Y2)
	}
	_, s.err = fmt.Fprintln(s.out, line)
}

func (s *traceSurface) DispatchPointerEvent(ev dpadcursor.PointerEvent) {
	s.write(traceRecord{
		At:     ev.EventTime.Sub(replayEpoch).Seconds(),
		Kind:   "pointer",
		Action: ev.Action.String(),
		ID:     ev.PointerID,
		Count:  ev.PointerCount,
		X:      ev.X,
		Y:      ev.Y,
		X2:     ev.X2,
		Y2:     ev.Y2,
	})
}

func (s *traceSurface) CanScroll(dx, dy float64) bool { return s.native }

func (s *traceSurface) ScrollBy(dx, dy float64) {
	s.write(traceRecord{At: s.since(), Kind: "scroll", X: dx, Y: dy})
}

func (s *traceSurface) LongPress(x, y int) {
	s.write(traceRecord{At: s.since(), Kind: "long", X: float64(x), Y: float64(y)})
}

func (s *traceSurface) TextSelectionStart(x, y int) {
	s.write(traceRecord{At: s.since(), Kind: "select", Action: "start", X: float64(x), Y: float64(y)})
}

func (s *traceSurface) TextSelectionMove(x, y int) {
	s.write(traceRecord{At: s.since(), Kind: "select", Action: "move", X: float64(x), Y: float64(y)})
}

func (s *traceSurface) TextSelectionEnd(x, y int) {
	s.write(traceRecord{At: s.since(), Kind: "select", Action: "end", X: float64(x), Y: float64(y)})
}

func (s *traceSurface) TextSelectionCancel() {
	s.write(traceRecord{At: s.since(), Kind: "select", Action: "cancel"})
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := dpadcursor.LoadTestScript(data)
	if err != nil {
		return err
	}

	sched := dpadcursor.NewLoopScheduler(replayEpoch)
	surface := newTraceSurface(cmd.OutOrStdout(), sched, replayOpts.nativeScroll, replayOpts.jsonOut)
	c := dpadcursor.NewController(surface, &dpadcursor.Options{
		Config:    &cfg,
		Scheduler: sched,
		Logger:    logger,
	})
	if debug {
		c.SetDebugMode(true)
		c.SetLogger(logger)
	}
	c.SetSurfaceSize(replayOpts.width, replayOpts.height)

	if replayOpts.frameMs <= 0 {
		return fmt.Errorf("frame-ms must be positive, got %d", replayOpts.frameMs)
	}
	frame := time.Duration(replayOpts.frameMs) * time.Millisecond
	if err := runner.Play(c, frame, replayOpts.maxFrames); err != nil {
		return err
	}
	if surface.err != nil {
		return fmt.Errorf("write trace: %w", surface.err)
	}
	return nil
}
