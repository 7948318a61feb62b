package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Rowdraraz100/RazNotes/internal/config"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

type Store interface {
	domain.StateStore
	Ping(ctx context.Context) error
}

// Open builds the store selected by cfg. rdb is only used by the redis
// backend. The returned close func releases whatever Open connected.
func Open(ctx context.Context, cfg config.Config, rdb *redis.Client) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewInMemoryStateStore(), noop, nil

	case config.BackendFile:
		store := NewFileStateStore(cfg.StateFile)
		log.Printf("[STORE] Using state file %s", store.Path())
		return store, noop, nil

	case config.BackendSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		store := NewSQLiteStateStore(db, cfg.StateKey)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Printf("[STORE] Using sqlite %s", cfg.SQLitePath)
		return store, db.Close, nil

	case config.BackendPostgres:
		db, err := sqlx.ConnectContext(ctx, cfg.Postgres.Driver, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)

		store := NewPostgresStateStore(db, cfg.Postgres.Table, cfg.StateKey)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("[STORE] Database connected successfully.")
		return store, db.Close, nil

	case config.BackendRedis:
		if rdb == nil {
			return nil, nil, errors.New("redis backend requires a redis client")
		}
		return NewRedisStateStore(rdb, cfg.StateKey), noop, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
}
