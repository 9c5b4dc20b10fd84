// Package userdata persists per-user state: accounts, sessions, favorites
// and resume positions. Catalog item ids are stored as opaque strings;
// because they derive from stable inputs, rows stay valid across rescans.
package userdata

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/medley/internal/migrations"
)

// Store provides access to the userdata database.
type Store struct {
	db *sql.DB
}

// NewStore wraps an existing database handle. The caller is responsible
// for the schema; see Open for the usual entry point.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open creates the database file (and parent directories) and applies
// pending migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies pending migrations. Progress is tracked with
// PRAGMA user_version, so reopening an up-to-date database is a no-op.
func (s *Store) Migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i, m := range migrations.All() {
		if i < version {
			continue
		}
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("apply migration %03d: %w", i+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("record schema version %d: %w", i+1, err)
		}
	}
	return nil
}

// DB exposes the underlying handle for components sharing the database.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
