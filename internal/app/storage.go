package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/flashmind/internal/adapter/blob/file"
	"github.com/heartmarshall/flashmind/internal/adapter/blob/memory"
	"github.com/heartmarshall/flashmind/internal/adapter/blob/sqlite"
	"github.com/heartmarshall/flashmind/internal/adapter/postgres"
	"github.com/heartmarshall/flashmind/internal/adapter/postgres/kvblob"
	"github.com/heartmarshall/flashmind/internal/config"
	"github.com/heartmarshall/flashmind/migrations"
)

// BlobStore is the key-value slot the deck list lives in.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// OpenStorage opens the blob store selected by cfg.Storage.Driver. The
// returned close function is never nil.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (BlobStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, decks are lost on exit")
		return memory.New(), noop, nil

	case config.DriverFile:
		store, err := file.New(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, fmt.Errorf("open file storage: %w", err)
		}
		return store, noop, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("close sqlite storage", slog.String("error", err.Error()))
			}
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return kvblob.New(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
