package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := app().Run(os.Args); err != nil {
		slog.Error("screams exited with error", "error", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "screams",
		Usage:   "Social feed API for short text posts",
		Version: version,
		Description: `Serves the screams feed: post, read, comment on, like and delete screams.

		Settings are read from an optional TOML file and can be overridden by
		flags or environment variables, e.g.:

		--port => SCREAMS_PORT=8080
		--store => SCREAMS_STORE=postgres
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML config file",
				EnvVars: []string{"SCREAMS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SCREAMS_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				EnvVars: []string{"SCREAMS_LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			rollbackCmd(),
			tokenCmd(),
			seedCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return cli.ShowAppHelp(ctx)
		},
	}
}
