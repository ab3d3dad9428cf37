package main

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"Screams/internal/db/migrations"
	postgresRepo "Screams/internal/db/postgres"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: `Applies all pending PostgreSQL migrations.`,
		Flags:       storeFlags(),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := requirePostgres(cfg); err != nil {
				return err
			}

			db, err := postgresRepo.Open(ctx.Context, cfg.Store.PostgresURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Up(db); err != nil {
				return err
			}

			version, err := migrations.Version(db)
			if err != nil {
				return err
			}
			slog.Info("migrations completed successfully", "version", version)
			return nil
		},
	}
}

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:        "rollback",
		Usage:       "Roll back the most recent database migration",
		Description: `Rolls back the most recently applied PostgreSQL migration.`,
		Flags:       storeFlags(),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := requirePostgres(cfg); err != nil {
				return err
			}

			db, err := postgresRepo.Open(ctx.Context, cfg.Store.PostgresURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Down(db); err != nil {
				return err
			}

			version, err := migrations.Version(db)
			if err != nil {
				return err
			}
			slog.Info("rollback completed", "version", version)
			return nil
		},
	}
}
