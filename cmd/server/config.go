package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"Screams/internal/config"
)

// storeFlags are shared by every command that touches the store
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Usage:   "Store backend (postgres, mongo, memory)",
			EnvVars: []string{"SCREAMS_STORE"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "PostgreSQL connection string",
			EnvVars: []string{"SCREAMS_DATABASE_URL", "DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "mongo-uri",
			Usage:   "MongoDB connection URI (replica set)",
			EnvVars: []string{"SCREAMS_MONGO_URI"},
		},
		&cli.StringFlag{
			Name:    "mongo-database",
			Usage:   "MongoDB database name",
			EnvVars: []string{"SCREAMS_MONGO_DATABASE"},
		},
	}
}

// loadConfig reads the config file and applies any flags that were set
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}

	setString := func(flag string, dst *string) {
		if ctx.IsSet(flag) {
			*dst = ctx.String(flag)
		}
	}

	setString("log-level", &cfg.Log.Level)
	setString("log-format", &cfg.Log.Format)
	setString("port", &cfg.Server.Port)
	setString("store", &cfg.Store.Backend)
	setString("database-url", &cfg.Store.PostgresURL)
	setString("mongo-uri", &cfg.Store.MongoURI)
	setString("mongo-database", &cfg.Store.MongoDatabase)
	setString("jwt-secret", &cfg.Auth.JWTSecret)

	if ctx.IsSet("cors-origins") {
		cfg.Server.CORSOrigins = ctx.StringSlice("cors-origins")
	}
	if ctx.IsSet("rate-limit") {
		cfg.RateLimit.Requests = ctx.Int("rate-limit")
	}
	if ctx.IsSet("rate-window") {
		cfg.RateLimit.Window = ctx.Duration("rate-window")
	}

	slog.SetDefault(newLogger(cfg.Log))
	return cfg, nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func requirePostgres(cfg *config.Config) error {
	if cfg.Store.PostgresURL == "" {
		return fmt.Errorf("a PostgreSQL connection string is required (--database-url or store.postgres_url)")
	}
	return nil
}
