// Package sqlite provides a SQLite-backed token store so identity survives
// process restarts on hosts without browser storage.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/peasyhq/peasy-go/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS peasy_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store implements ports.TokenStore on a SQLite database file.
type Store struct {
	db *sqlx.DB
}

// New opens (creating if needed) the database at path and initializes the
// schema.
func New(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM peasy_kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO peasy_kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ ports.TokenStore = (*Store)(nil)
