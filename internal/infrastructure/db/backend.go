// Package db selects and opens the configured storage backend.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/ports"
	"github.com/dashkit/admin-api/internal/infrastructure/db/memory"
	"github.com/dashkit/admin-api/internal/infrastructure/db/mongo"
	"github.com/dashkit/admin-api/internal/infrastructure/db/postgres"
	"github.com/dashkit/admin-api/internal/pkg/config"
)

// Backend is one opened store, exposed through the ports the services need.
type Backend struct {
	Driver     string
	Users      ports.UserRepository
	Posts      ports.PostRepository
	Activities ports.ActivityRepository
	Tx         ports.TxManager
	Pinger     ports.Pinger
	// Sessions is set only by backends that can hold revocations themselves.
	Sessions ports.SessionStore

	close func(ctx context.Context) error
}

// Close releases the backend's connections.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the store named by cfg.StoreDriver and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		store := mongo.NewStore(client, database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &Backend{
			Driver:     cfg.StoreDriver,
			Users:      store.Users(),
			Posts:      store.Posts(),
			Activities: store.Activities(),
			Tx:         store,
			Pinger:     store,
			close:      store.Close,
		}, nil

	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.Postgres.URL); err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		log.Info().Msg("connected to postgres")
		return &Backend{
			Driver:     cfg.StoreDriver,
			Users:      store.Users(),
			Posts:      store.Posts(),
			Activities: store.Activities(),
			Tx:         store,
			Pinger:     store,
			close: func(context.Context) error {
				store.Close()
				return nil
			},
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &Backend{
			Driver:     cfg.StoreDriver,
			Users:      store.Users(),
			Posts:      store.Posts(),
			Activities: store.Activities(),
			Tx:         store,
			Pinger:     store,
			Sessions:   store.Sessions(),
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
