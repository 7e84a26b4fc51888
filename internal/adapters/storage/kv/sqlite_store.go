package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store on the kv_entry table.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time checks.
var (
	_ Store  = (*SQLiteStore)(nil)
	_ Pruner = (*SQLiteStore)(nil)
)

// NewSQLiteStore creates a Store backed by SQLite.
// PRE: db has been migrated (storage.MigrateDB)
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the value stored under (scope, key).
// PRE: none
// POST: Returns the value or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, scope, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_entry WHERE scope = ? AND key = ?", scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

// Set persists value under (scope, key).
// PRE: none
// POST: Entry is inserted or replaced, updated_at refreshed
func (s *SQLiteStore) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entry (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		scope, key, value, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Delete removes (scope, key).
// PRE: none
// POST: Entry with given scope and key is removed
func (s *SQLiteStore) Delete(ctx context.Context, scope, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entry WHERE scope = ? AND key = ?", scope, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

// Prune removes entries not written since olderThan.
// PRE: none
// POST: Returns the number of removed entries
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM kv_entry WHERE updated_at < ?", olderThan.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("kv prune: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
