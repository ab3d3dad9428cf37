package main

import (
	"context"
	"fmt"
	"log/slog"

	"Screams/internal/config"
	"Screams/internal/core/screams"
	"Screams/internal/db/memory"
	"Screams/internal/db/migrations"
	mongoRepo "Screams/internal/db/mongo"
	postgresRepo "Screams/internal/db/postgres"
)

// openStore connects the configured backend and prepares its schema
// The returned close func releases the connection
func openStore(ctx context.Context, cfg config.StoreConfig) (screams.Repository, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := postgresRepo.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("connected to postgres")

		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("migrations completed successfully")

		return postgresRepo.NewScreamRepository(db), func() { _ = db.Close() }, nil

	case config.BackendMongo:
		client, err := mongoRepo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := mongoRepo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		slog.Info("connected to mongo", "database", cfg.MongoDatabase)

		return mongoRepo.NewScreamRepository(database), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.BackendMemory:
		slog.Warn("using in-memory store; data is lost on restart")
		return memory.NewScreamRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
