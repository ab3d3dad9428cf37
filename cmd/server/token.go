package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"Screams/internal/api/middleware"
	"Screams/internal/core/screams"
)

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a bearer token for local development",
		Description: `Signs an HS256 token with the configured secret. Production tokens
come from the identity provider; this exists for local testing.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "handle",
				Usage:    "Caller handle",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "image-url",
				Usage: "Caller avatar URL",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "Token lifetime",
				Value: 24 * time.Hour,
			},
			&cli.StringFlag{
				Name:    "jwt-secret",
				Usage:   "HS256 signing secret",
				EnvVars: []string{"SCREAMS_JWT_SECRET"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("a signing secret is required (--jwt-secret or auth.jwt_secret)")
			}

			token, err := middleware.SignToken([]byte(cfg.Auth.JWTSecret), screams.Author{
				Handle:   ctx.String("handle"),
				ImageURL: ctx.String("image-url"),
			}, ctx.Duration("ttl"))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(ctx.App.Writer, token)
			return err
		},
	}
}
