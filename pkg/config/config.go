// Package config loads ntwk settings from a TOML file.
//
// Config file locations (priority order):
//  1. $NTWK_CONFIG
//  2. $XDG_CONFIG_HOME/ntwk/config.toml
//  3. ~/.config/ntwk/config.toml
//
// A missing file is not an error: [Load] returns [DefaultConfig]. Keys left
// out of a file keep their defaults.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ntwkui/ntwk/pkg/errors"
)

// Log levels accepted in [log].level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the full settings file.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Style  StyleConfig  `toml:"style"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// CanvasConfig sizes the drawing area and its marks, in canvas units.
type CanvasConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	NodeRadius  float64 `toml:"node_radius"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// StyleConfig holds SVG colors.
type StyleConfig struct {
	NodeColor  string `toml:"node_color"`
	EdgeColor  string `toml:"edge_color"`
	Background string `toml:"background"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the settings used when no file is found.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load finds and loads the config file, or returns defaults if none found.
// The returned path is empty when defaults are used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the config at path.
func LoadFromPath(path string) (*Config, string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, path, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, path, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg, err := Parse(data)
	return cfg, path, err
}

// Parse decodes TOML config data, fills defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 500
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 600
	}
	if c.Canvas.NodeRadius == 0 {
		c.Canvas.NodeRadius = 5
	}
	if c.Canvas.StrokeWidth == 0 {
		c.Canvas.StrokeWidth = 2
	}
	if c.Style.NodeColor == "" {
		c.Style.NodeColor = "#000000"
	}
	if c.Style.EdgeColor == "" {
		c.Style.EdgeColor = "#000000"
	}
	if c.Style.Background == "" {
		c.Style.Background = "#ffffff"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
}

// Validate rejects settings no renderer can use.
func (c *Config) Validate() error {
	sizes := []struct {
		key string
		v   float64
	}{
		{"canvas.width", c.Canvas.Width},
		{"canvas.height", c.Canvas.Height},
		{"canvas.node_radius", c.Canvas.NodeRadius},
		{"canvas.stroke_width", c.Canvas.StrokeWidth},
	}
	for _, s := range sizes {
		if err := errors.ValidateCoordinate(s.key, s.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", s.key)
		}
		if s.v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", s.key, s.v)
		}
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Save writes c to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
