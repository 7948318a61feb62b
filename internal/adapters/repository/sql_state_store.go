package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	_ domain.StateStore = (*PostgresStateStore)(nil)
	_ domain.StateStore = (*SQLiteStateStore)(nil)
)

// sqlSlot is one row per named slot. The dialects only differ in DDL and
// bind variables, which sqlx.Rebind takes care of.
type sqlSlot struct {
	db    *sqlx.DB
	table string
	key   string
}

func (s *sqlSlot) load(ctx context.Context) (*domain.StoredData, error) {
	query := s.db.Rebind(fmt.Sprintf(`SELECT payload FROM %s WHERE slot = ?`, s.table))

	var payload string
	err := s.db.QueryRowxContext(ctx, query, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored := domain.DecodeStoredData([]byte(payload))
	if stored == nil {
		log.Printf("[STORE] Discarding unreadable state for slot %s", s.key)
	}
	return stored, nil
}

func (s *sqlSlot) save(ctx context.Context, data *domain.AppData, upsert string) error {
	raw, err := domain.EncodeAppData(data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(upsert), s.key, string(raw), time.Now().UTC())
	return err
}

func (s *sqlSlot) clear(ctx context.Context) error {
	query := s.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE slot = ?`, s.table))
	_, err := s.db.ExecContext(ctx, query, s.key)
	return err
}

type PostgresStateStore struct {
	sqlSlot
}

// NewPostgresStateStore stores the slot as JSONB in table. The table name is
// quoted, so it may come straight from configuration.
func NewPostgresStateStore(db *sqlx.DB, table, key string) *PostgresStateStore {
	return &PostgresStateStore{sqlSlot{db: db, table: pq.QuoteIdentifier(table), key: key}}
}

func (s *PostgresStateStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            slot       TEXT PRIMARY KEY,
            payload    JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`, s.table)

	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresStateStore) Load(ctx context.Context) (*domain.StoredData, error) {
	return s.load(ctx)
}

func (s *PostgresStateStore) Save(ctx context.Context, data *domain.AppData) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (slot, payload, updated_at) VALUES (?, ?::jsonb, ?)
        ON CONFLICT (slot) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`, s.table)
	return s.save(ctx, data, query)
}

func (s *PostgresStateStore) Clear(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *PostgresStateStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type SQLiteStateStore struct {
	sqlSlot
}

// OpenSQLite opens a local database with the pragmas needed when the CLI and
// the server share one file.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return db, nil
}

func NewSQLiteStateStore(db *sqlx.DB, key string) *SQLiteStateStore {
	return &SQLiteStateStore{sqlSlot{db: db, table: "app_state", key: key}}
}

func (s *SQLiteStateStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS app_state (
            slot       TEXT PRIMARY KEY,
            payload    TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        )`)
	return err
}

func (s *SQLiteStateStore) Load(ctx context.Context) (*domain.StoredData, error) {
	return s.load(ctx)
}

func (s *SQLiteStateStore) Save(ctx context.Context, data *domain.AppData) error {
	return s.save(ctx, data, `
        INSERT INTO app_state (slot, payload, updated_at) VALUES (?, ?, ?)
        ON CONFLICT (slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
}

func (s *SQLiteStateStore) Clear(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *SQLiteStateStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
