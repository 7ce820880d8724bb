/*
Hello Triangle: opens a window and draws a single white triangle on a green
background, one frame per display refresh.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/hellotriangle/engine"
	"github.com/spaghettifunk/hellotriangle/engine/config"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/triangle"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

func run(configPath string) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	appConfig, err := engine.NewApplicationConfig(cfg)
	if err != nil {
		return err
	}
	core.SetLogLevel(appConfig.LogLevel)

	game := triangle.NewTriangleGame(appConfig)

	e, err := engine.New(game.Game)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := e.Shutdown(); shutdownErr != nil {
			core.LogError("shutdown: %s", shutdownErr)
			if err == nil {
				err = shutdownErr
			}
		}
	}()

	if err := e.Initialize(); err != nil {
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// The loop owns the window and GPU. The signal goroutine only asks it
	// to stop.
	go func() {
		if sig, ok := <-sigCh; ok {
			core.LogInfo("Received %s, quitting.", sig)
			e.RequestQuit()
		}
	}()

	return e.Run()
}
