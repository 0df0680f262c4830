// Package store provides the SQLite-backed ledger: entity lookup-or-create,
// transaction recording and balance aggregation.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var (
	// ErrInvalidKind is returned when a lookup names an unknown entity kind.
	ErrInvalidKind = errors.New("invalid entity kind")
	// ErrSymbolTooLong is returned when an account is created with a
	// currency symbol longer than one character.
	ErrSymbolTooLong = errors.New("currency symbol must be a single character")
)

// Store wraps a single SQLite connection. The ledger assumes one process and
// one writer; nothing here is safe for concurrent use from multiple
// processes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the database file at path. It does not create schema tables;
// use Init for that (the new-db path).
func Open(path string) (*Store, error) {
	connStr := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying *sql.DB for queries not covered by the store
// methods.
func (s *Store) DB() *sql.DB {
	return s.db
}
