package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Frontend FrontendConfig `toml:"frontend"`
	Audio    AudioConfig    `toml:"audio"`
	Logging  LoggingConfig  `toml:"logging"`
	Game     GameConfig     `toml:"game"`
	Debug    DebugConfig    `toml:"debug"`
}

type WindowConfig struct {
	Title string  `toml:"title"`
	Scale float64 `toml:"scale"` // window pixels per arena unit
	VSync bool    `toml:"vsync"`
}

type FrontendConfig struct {
	Kind string `toml:"kind"` // "window" or "terminal"
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // file path; empty means stderr
}

type GameConfig struct {
	Seed uint64 `toml:"seed"` // 0 picks a random seed
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Load reads the TOML file at path over the defaults. A missing file is not
// an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Pong",
			Scale: 1,
			VSync: true,
		},
		Frontend: FrontendConfig{
			Kind: FrontendWindow,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Frontend.Kind {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend.Kind)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window scale must be positive, got %v", c.Window.Scale)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	return nil
}
