/*
corridor opens a window on a scene manifest and lets you walk through it
with the mouse and WASD.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/corridor/engine"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/viewer"
)

const configEnv = "CORRIDOR_CONFIG"

func main() {
	if err := run(); err != nil {
		core.LogError(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv(configEnv), fmt.Sprintf("path to the TOML configuration (or set %s)", configEnv))
	flag.Parse()

	config := engine.DefaultApplicationConfig()
	if *configPath != "" {
		c, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			return err
		}
		config = c
	}

	v, err := viewer.NewViewer(config)
	if err != nil {
		return err
	}

	e, err := engine.New(v.Game)
	if err != nil {
		return err
	}

	// signal channel to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := e.Initialize(); err != nil {
		return errors.Join(err, e.Shutdown())
	}

	// run engine
	runErr := e.Run(ctx)
	return errors.Join(runErr, e.Shutdown())
}
