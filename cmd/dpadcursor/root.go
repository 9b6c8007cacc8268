package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dpadcursor"
)

var (
	configPath string
	debug      bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "dpadcursor",
	Short: "Drive pointer-only content with a directional pad",
	Long: `dpadcursor turns arrow keys, a numeric keypad or a gamepad D-pad into a
virtual pointer with acceleration, click, long press, grab, text selection,
edge scrolling and pinch zoom.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml, .yml or .json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.AddCommand(demoCmd, desktopCmd, replayCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("component", "dpadcursor")
}

func loadConfig() (dpadcursor.Config, error) {
	if configPath == "" {
		return dpadcursor.DefaultConfig(), nil
	}
	cfg, err := dpadcursor.LoadConfig(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", configPath, err)
	}
	return cfg, nil
}

// watchConfig starts hot reload when a config file was given. Reload errors
// are logged; the returned channel is nil without a config file.
func watchConfig(logger *slog.Logger) (<-chan dpadcursor.Config, func(), error) {
	if configPath == "" {
		return nil, func() {}, nil
	}
	w, err := dpadcursor.WatchConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("watch %s: %w", configPath, err)
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case err := <-w.Errors():
				logger.Warn("config reload failed", "path", configPath, "error", err)
			}
		}
	}()
	stop := func() {
		close(done)
		if err := w.Close(); err != nil {
			logger.Warn("close config watcher", "error", err)
		}
	}
	return w.Configs(), stop, nil
}
