package main

import (
	"fmt"
	"os"

	"github.com/Miyamura80/appctl/internal/cli"
	"github.com/Miyamura80/appctl/internal/config"
	"github.com/Miyamura80/appctl/internal/engine"
	"github.com/Miyamura80/appctl/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	app := engine.NewPlatformContext(cfg.ProbeURL, logger)
	registry := engine.NewRegistry()

	cmd := cli.NewRootCommand(app, registry, cfg)
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
