// Package config loads the application configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Window starting position x axis.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height.
	StartHeight uint32 `toml:"start_height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type RendererConfig struct {
	// Enables the Khronos validation layer and the debug report callback.
	Validation bool `toml:"validation"`
	// Pace frames to the display refresh (FIFO present mode).
	VSync bool `toml:"vsync"`
	// Upper bound on simultaneously recorded frames.
	MaxFramesInFlight uint8 `toml:"max_frames_in_flight"`
}

type AssetsConfig struct {
	// Directory searched for shader overrides.
	Dir string `toml:"dir"`
	// Watch Dir and hot-reload shaders on change.
	Watch bool `toml:"watch"`
}

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Log         LogConfig         `toml:"log"`
	Renderer    RendererConfig    `toml:"renderer"`
	Assets      AssetsConfig      `toml:"assets"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:        "Hello Triangle",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  800,
			StartHeight: 600,
		},
		Log: LogConfig{
			Level: "info",
		},
		Renderer: RendererConfig{
			Validation:        false,
			VSync:             true,
			MaxFramesInFlight: 2,
		},
		Assets: AssetsConfig{
			Dir:   "assets",
			Watch: false,
		},
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, rejecting unknown keys, and validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Application.StartWidth == 0 || c.Application.StartHeight == 0 {
		return fmt.Errorf("window size must be non-zero, got %dx%d", c.Application.StartWidth, c.Application.StartHeight)
	}
	if c.Renderer.MaxFramesInFlight == 0 {
		return errors.New("max_frames_in_flight must be at least 1")
	}
	return nil
}
