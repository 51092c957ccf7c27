package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	progressout "mente/internal/modules/progress/port/out"
	"mente/internal/platform/clock"
	apperrors "mente/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteStateStore struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteStateStore(dbPath string, clk clock.Clock) (progressout.StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStateStore{db: db, clock: clk}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStateStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteStateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read state %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStateStore) Put(ctx context.Context, key string, value []byte) error {
	const stmt = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, string(value), s.clock.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStateStore) Close() error {
	return s.db.Close()
}
