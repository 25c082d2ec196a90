package main

import (
	"fmt"
	"os"

	"imagelab/internal/config"

	"github.com/urfave/cli/v2"
)

const (
	AppName    = "Image Lab"
	AppID      = "com.imagelab.desktop"
	AppVersion = "1.0.0"
)

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a .yaml, .yml or .toml config file",
		EnvVars: []string{"IMAGELAB_CONFIG"},
	},
	&cli.StringFlag{
		Name:  "service-url",
		Usage: "Base URL of the image service",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level (debug, info, warn, error)",
	},
	&cli.DurationFlag{
		Name:  "timeout",
		Usage: "Per-request timeout, 0 waits indefinitely",
	},
	&cli.BoolFlag{
		Name:  "json-logs",
		Usage: "Write logs as JSON",
	},
	&cli.BoolFlag{
		Name:  "no-dotenv",
		Usage: "Do not read a .env file",
	},
}

func main() {
	app := &cli.App{
		Name:    "imagelab",
		Usage:   "Desktop client for the image compression and noise filtering service",
		Version: AppVersion,
		Flags:   flags,
		Action:  run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(config.Options{
		Path:   c.String("config"),
		DotEnv: !c.Bool("no-dotenv"),
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	application, err := NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("application initialization failed: %w", err)
	}

	application.Run(c.Context)
	return nil
}

// applyFlags overrides file and environment settings with explicit flags.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("service-url") {
		cfg.Service.BaseURL = c.String("service-url")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("timeout") {
		cfg.Service.Timeout = c.Duration("timeout")
	}
	if c.IsSet("json-logs") {
		cfg.Log.JSON = c.Bool("json-logs")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
