package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("app: invalid config")

// Config defaults.
const (
	DefaultWidth           = 1280
	DefaultHeight          = 720
	DefaultTargetFramerate = 60
	DefaultMaxUpdates      = 5
)

// Config describes an application. The callback fields are not read from
// config files.
type Config struct {
	Name            string `yaml:"name" toml:"name"`
	Width           int    `yaml:"width" toml:"width"`
	Height          int    `yaml:"height" toml:"height"`
	TargetFramerate int    `yaml:"target_framerate" toml:"target_framerate"`
	MaxUpdates      int    `yaml:"max_updates" toml:"max_updates"`
	// Renderer names a registered backend. Empty selects the default.
	Renderer string `yaml:"renderer" toml:"renderer"`

	OnStartup  func(*App) `yaml:"-" toml:"-"`
	OnShutdown func(*App) `yaml:"-" toml:"-"`
	OnUpdate   func(*App) `yaml:"-" toml:"-"`
	OnRender   func(*App) `yaml:"-" toml:"-"`
	// OnExitRequest runs when the platform asks to close. Nil exits.
	OnExitRequest func(*App) `yaml:"-" toml:"-"`
	// OnLog receives every blit log record while the app runs.
	OnLog func(level slog.Level, msg string) `yaml:"-" toml:"-"`
}

// DefaultConfig returns a config with the default size and timing.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		TargetFramerate: DefaultTargetFramerate,
		MaxUpdates:      DefaultMaxUpdates,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.TargetFramerate < 1:
		return fmt.Errorf("%w: target framerate %d must be at least 1", ErrInvalidConfig, c.TargetFramerate)
	case c.MaxUpdates < 1:
		return fmt.Errorf("%w: max updates %d must be at least 1", ErrInvalidConfig, c.MaxUpdates)
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file over the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("app: read config: %w", err)
	}
	if err := decodeConfig(&cfg, filepath.Ext(path), data); err != nil {
		return cfg, fmt.Errorf("app: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}
