// Package config assembles one run's configuration. Precedence, lowest to
// highest: built-in defaults, optional TOML file, MEDIAPREP_* environment
// variables, command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"

	"github.com/quangtn/mediaprep/internal/split"
	"github.com/quangtn/mediaprep/internal/types"
)

// Image holds the image pipeline parameters.
type Image struct {
	Width   int `toml:"width" validate:"gt=0"`
	Height  int `toml:"height" validate:"gt=0"`
	Quality int `toml:"quality" validate:"gte=1,lte=100"`
}

// Video holds the video pipeline parameters.
type Video struct {
	FPS    int `toml:"fps" validate:"gt=0"`
	Width  int `toml:"width" validate:"gt=0"`
	Height int `toml:"height" validate:"gt=0"`
}

// Env holds settings that come from the environment only; they tune the
// host integration, not the dataset semantics.
type Env struct {
	FFmpegPath string `env:"MEDIAPREP_FFMPEG, default=ffmpeg"`
	LogFormat  string `env:"MEDIAPREP_LOG_FORMAT, default=text"` // "text" or "json"
	LogLevel   string `env:"MEDIAPREP_LOG_LEVEL, default=info"`
}

// Config is one run's full configuration.
type Config struct {
	Kind       types.Kind `toml:"-"`
	SrcRoot    string     `toml:"src_root" validate:"required"`
	OutputRoot string     `toml:"output_root" validate:"required"`
	Seed       int64      `toml:"seed"`
	Ratios     [3]float64 `toml:"ratios"`
	DryRun     bool       `toml:"dry_run"`
	Image      Image      `toml:"image"`
	Video      Video      `toml:"video"`
	Env        Env        `toml:"-"`
}

// Default returns the built-in defaults: 224x224 q95 images, 30fps 720p
// video, seed 42, 70/20/10 ratios.
func Default() Config {
	return Config{
		Seed:   42,
		Ratios: split.DefaultRatios,
		Image:  Image{Width: 224, Height: 224, Quality: 95},
		Video:  Video{FPS: 30, Width: 1280, Height: 720},
	}
}

// LoadFile overlays values from a TOML file onto c.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv fills the environment-only settings.
func (c *Config) LoadEnv(ctx context.Context) error {
	if err := envconfig.Process(ctx, &c.Env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Validate checks the merged configuration. Ratio validation happens here,
// before any filesystem work, so a bad split configuration never creates
// output directories.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := split.ValidateRatios(c.Ratios); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the run logger on stderr, leaving stdout to the
// summary.
func (c *Config) NewLogger() *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.Env.LogLevel)}
	if strings.EqualFold(c.Env.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
