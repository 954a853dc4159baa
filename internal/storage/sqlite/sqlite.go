// Package sqlite persists the portal's collections in a single-file
// SQLite database, suitable for local single-binary deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/harshitha-dev/event-booking-portal/internal/storage"
)

type store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and ensures the
// collections table exists.
func New(path string) (storage.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// The medium is a plain key → JSON blob table.
	const schema = `CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}

	return &store{db: db}, nil
}

func (s *store) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM collections WHERE key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, fmt.Errorf("load %q: %w", key, err)
	}

	return value, nil
}

func (s *store) Save(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
