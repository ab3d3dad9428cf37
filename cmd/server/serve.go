package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"Screams/internal/api/middleware"
	"Screams/internal/api/routes"
	"Screams/internal/config"
	"Screams/internal/core/screams"
	"Screams/internal/monitoring"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the screams HTTP API",
		Description: `Starts the HTTP server on the configured port. With the postgres
store, pending migrations run before the server accepts requests.`,
		Flags: append(storeFlags(),
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				EnvVars: []string{"SCREAMS_PORT"},
			},
			&cli.StringSliceFlag{
				Name:    "cors-origins",
				Usage:   "Allowed CORS origins",
				EnvVars: []string{"SCREAMS_CORS_ORIGINS"},
			},
			&cli.StringFlag{
				Name:    "jwt-secret",
				Usage:   "HS256 secret used to verify bearer tokens",
				EnvVars: []string{"SCREAMS_JWT_SECRET"},
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Usage:   "Requests allowed per client per window",
				EnvVars: []string{"SCREAMS_RATE_LIMIT"},
			},
			&cli.DurationFlag{
				Name:    "rate-window",
				Usage:   "Rate limit window",
				EnvVars: []string{"SCREAMS_RATE_WINDOW"},
			},
		),
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(ctx.Context, cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	monitoring.Register(prometheus.DefaultRegisterer)

	service := screams.NewService(repo, slog.Default())
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Auth.JWTSecret))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimiter.Middleware)

	routes.RegisterScreamRoutes(r, service, authMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("screams starting", "port", cfg.Server.Port, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
