package dpadcursor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// duration decodes Go duration strings ("16ms", "5s") from any of the
// supported file formats.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// fileConfig is the on-disk schema of Config.
type fileConfig struct {
	TickInterval        duration `toml:"tick_interval" yaml:"tick_interval" json:"tick_interval"`
	Acceleration        float64  `toml:"acceleration" yaml:"acceleration" json:"acceleration"`
	MaxSpeed            float64  `toml:"max_speed" yaml:"max_speed" json:"max_speed"`
	MaxSpeedDivisor     float64  `toml:"max_speed_divisor" yaml:"max_speed_divisor" json:"max_speed_divisor"`
	SnapThreshold       float64  `toml:"snap_threshold" yaml:"snap_threshold" json:"snap_threshold"`
	DisappearTimeout    duration `toml:"disappear_timeout" yaml:"disappear_timeout" json:"disappear_timeout"`
	LongPressTimeout    duration `toml:"long_press_timeout" yaml:"long_press_timeout" json:"long_press_timeout"`
	LongPressGrace      duration `toml:"long_press_grace" yaml:"long_press_grace" json:"long_press_grace"`
	ScrollStartPadding  float64  `toml:"scroll_start_padding" yaml:"scroll_start_padding" json:"scroll_start_padding"`
	ScrollHackPadding   float64  `toml:"scroll_hack_padding" yaml:"scroll_hack_padding" json:"scroll_hack_padding"`
	ScrollHackRetry     bool     `toml:"scroll_hack_retry" yaml:"scroll_hack_retry" json:"scroll_hack_retry"`
	ZoomDuration        duration `toml:"zoom_duration" yaml:"zoom_duration" json:"zoom_duration"`
	ZoomFactor          float64  `toml:"zoom_factor" yaml:"zoom_factor" json:"zoom_factor"`
	ZoomNearRatio       float64  `toml:"zoom_near_ratio" yaml:"zoom_near_ratio" json:"zoom_near_ratio"`
	ZoomEasing          string   `toml:"zoom_easing" yaml:"zoom_easing" json:"zoom_easing"`
	CursorRadiusDivisor float64  `toml:"cursor_radius_divisor" yaml:"cursor_radius_divisor" json:"cursor_radius_divisor"`
}

func newFileConfig(c Config) fileConfig {
	return fileConfig{
		TickInterval:        duration(c.TickInterval),
		Acceleration:        c.Acceleration,
		MaxSpeed:            c.MaxSpeed,
		MaxSpeedDivisor:     c.MaxSpeedDivisor,
		SnapThreshold:       c.SnapThreshold,
		DisappearTimeout:    duration(c.DisappearTimeout),
		LongPressTimeout:    duration(c.LongPressTimeout),
		LongPressGrace:      duration(c.LongPressGrace),
		ScrollStartPadding:  c.ScrollStartPadding,
		ScrollHackPadding:   c.ScrollHackPadding,
		ScrollHackRetry:     c.ScrollHackRetry,
		ZoomDuration:        duration(c.ZoomDuration),
		ZoomFactor:          c.ZoomFactor,
		ZoomNearRatio:       c.ZoomNearRatio,
		ZoomEasing:          c.ZoomEasing,
		CursorRadiusDivisor: c.CursorRadiusDivisor,
	}
}

func (f fileConfig) config() Config {
	return Config{
		TickInterval:        time.Duration(f.TickInterval),
		Acceleration:        f.Acceleration,
		MaxSpeed:            f.MaxSpeed,
		MaxSpeedDivisor:     f.MaxSpeedDivisor,
		SnapThreshold:       f.SnapThreshold,
		DisappearTimeout:    time.Duration(f.DisappearTimeout),
		LongPressTimeout:    time.Duration(f.LongPressTimeout),
		LongPressGrace:      time.Duration(f.LongPressGrace),
		ScrollStartPadding:  f.ScrollStartPadding,
		ScrollHackPadding:   f.ScrollHackPadding,
		ScrollHackRetry:     f.ScrollHackRetry,
		ZoomDuration:        time.Duration(f.ZoomDuration),
		ZoomFactor:          f.ZoomFactor,
		ZoomNearRatio:       f.ZoomNearRatio,
		ZoomEasing:          f.ZoomEasing,
		CursorRadiusDivisor: f.CursorRadiusDivisor,
	}
}

// LoadConfig reads a configuration file, choosing the decoder by extension
// (.toml, .yaml/.yml, .json). Fields absent from the file keep their
// DefaultConfig values. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data, filepath.Ext(path))
}

func parseConfig(data []byte, ext string) (Config, error) {
	fc := newFileConfig(DefaultConfig())
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return Config{}, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg := fc.config()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ConfigWatcher reloads a configuration file whenever it changes on disk.
// It runs its own goroutine; new configs arrive on Configs and must be
// applied with Controller.SetConfig from the Controller's goroutine.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	configs chan Config
	errs    chan error
	ctx     context.Context
	cancel  context.CancelFunc
}

const configReloadDebounce = 100 * time.Millisecond

// WatchConfig starts watching path. The file's directory is watched so
// editors that replace the file atomically are handled.
func WatchConfig(path string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &ConfigWatcher{
		path:    path,
		watcher: watcher,
		configs: make(chan Config, 1),
		errs:    make(chan error, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	go w.loop()
	return w, nil
}

// Configs delivers each successfully reloaded configuration. Only the latest
// unread config is kept.
func (w *ConfigWatcher) Configs() <-chan Config { return w.configs }

// Errors delivers read, decode and validation failures.
func (w *ConfigWatcher) Errors() <-chan error { return w.errs }

// Close stops watching.
func (w *ConfigWatcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *ConfigWatcher) loop() {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(configReloadDebounce, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.sendErr(fmt.Errorf("reload config: %w", err))
		return
	}
	// Keep only the latest.
	select {
	case w.configs <- cfg:
	default:
		select {
		case <-w.configs:
		default:
		}
		select {
		case w.configs <- cfg:
		default:
		}
	}
}

func (w *ConfigWatcher) sendErr(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
