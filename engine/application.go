package engine

import (
	"fmt"

	"github.com/spaghettifunk/hellotriangle/engine/config"
	"github.com/spaghettifunk/hellotriangle/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel

	Validation        bool
	VSync             bool
	MaxFramesInFlight uint8

	AssetsDir   string
	WatchAssets bool
}

// NewApplicationConfig flattens a loaded configuration.
func NewApplicationConfig(cfg *config.Config) (*ApplicationConfig, error) {
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return &ApplicationConfig{
		StartPosX:         cfg.Application.StartPosX,
		StartPosY:         cfg.Application.StartPosY,
		StartWidth:        cfg.Application.StartWidth,
		StartHeight:       cfg.Application.StartHeight,
		Name:              cfg.Application.Name,
		LogLevel:          level,
		Validation:        cfg.Renderer.Validation,
		VSync:             cfg.Renderer.VSync,
		MaxFramesInFlight: cfg.Renderer.MaxFramesInFlight,
		AssetsDir:         cfg.Assets.Dir,
		WatchAssets:       cfg.Assets.Watch,
	}, nil
}
