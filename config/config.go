// Package config loads pixcore rendering settings from TOML.
//
// A configuration file has two sections:
//
//	[render]
//	flatness = 0.25        # curve flattening tolerance in device pixels
//	line_fast_path = true  # thin polylines through the line rasterizer
//	arc_fast_path = true   # thin ellipses and arcs through the arc rasterizer
//	interop_blits = true   # golang.org/x/image/draw for aliasing RGBA blits
//
//	[log]
//	level = "warn"         # debug, info, warn, error or off
//	format = "text"        # text or json
//
// Keys that are absent keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/pixcore"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the decoded configuration.
type Config struct {
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
}

// Render holds the context options.
type Render struct {
	Flatness     float64 `toml:"flatness"`
	LineFastPath bool    `toml:"line_fast_path"`
	ArcFastPath  bool    `toml:"arc_fast_path"`
	InteropBlits bool    `toml:"interop_blits"`
}

// Log selects the logger installed with pixcore.SetLogger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Render: Render{
			Flatness:     0.25,
			LineFastPath: true,
			ArcFastPath:  true,
			InteropBlits: true,
		},
		Log: Log{Level: "off", Format: "text"},
	}
}

// Load reads and validates the TOML file at path.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.check(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates TOML held in memory.
func Parse(data string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.check(md); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) check(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(names, ", "))
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	f := c.Render.Flatness
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: render.flatness must be positive, got %v", ErrInvalidConfig, f)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Options returns the render section as context options.
func (c *Config) Options() []pixcore.ContextOption {
	return []pixcore.ContextOption{
		pixcore.WithFlatness(c.Render.Flatness),
		pixcore.WithLineFastPath(c.Render.LineFastPath),
		pixcore.WithArcFastPath(c.Render.ArcFastPath),
		pixcore.WithInteropBlits(c.Render.InteropBlits),
	}
}

// Logger builds the logger described by the log section, writing to w
// (os.Stderr when nil). It returns nil when logging is off, which
// pixcore.SetLogger treats as silence.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil || level == levelOff {
		return nil
	}
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

const levelOff = slog.Level(math.MaxInt32)

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "off", "none":
		return levelOff, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, s)
}
