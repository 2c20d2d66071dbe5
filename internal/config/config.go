// Package config handles tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for out of range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig holds tree construction settings.
type BuildConfig struct {
	Epsilon  float64 `yaml:"epsilon"`   // ON tolerance for side tests
	MaxDepth int     `yaml:"max_depth"` // 0 disables the limit
	Extent   float64 `yaml:"extent"`    // half-size of the leaf clipping square
}

// OutputConfig holds dump file paths.
type OutputConfig struct {
	LeafDump string `yaml:"leaf_dump"`
	WallDump string `yaml:"wall_dump"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Epsilon:  0.2,
			MaxDepth: 4096,
			Extent:   16384,
		},
		Output: OutputConfig{
			LeafDump: "leafs.txt",
			WallDump: "walls.txt",
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			Margin: 24,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Build.Epsilon <= 0:
		return fmt.Errorf("%w: build.epsilon must be positive, got %g", ErrInvalid, c.Build.Epsilon)
	case c.Build.MaxDepth < 0:
		return fmt.Errorf("%w: build.max_depth must not be negative, got %d", ErrInvalid, c.Build.MaxDepth)
	case c.Build.Extent <= 0:
		return fmt.Errorf("%w: build.extent must be positive, got %g", ErrInvalid, c.Build.Extent)
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	case c.Viewer.Margin < 0 || 2*c.Viewer.Margin >= c.Viewer.Width || 2*c.Viewer.Margin >= c.Viewer.Height:
		return fmt.Errorf("%w: viewer.margin %d does not fit %dx%d",
			ErrInvalid, c.Viewer.Margin, c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}
