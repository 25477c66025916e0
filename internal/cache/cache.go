// Package cache persists resolution outcomes in a local SQLite database.
//
// Resolutions are referentially transparent, so a recorded (operation,
// type) -> label row stays valid for as long as the dispatch table is
// unchanged; the resolver uses the store to verify that repeated and
// cross-process resolutions agree.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	op       TEXT NOT NULL,
	type_key TEXT NOT NULL,
	label    TEXT NOT NULL,
	PRIMARY KEY (op, type_key)
);
`

// Store is a dispatch.Store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the selection database at path.
// Use ":memory:" for a throwaway in-process store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening selection cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing selection cache: %w", err)
	}
	return &Store{db: db}, nil
}

// GetSelection returns the recorded label for (op, typeKey), if any.
func (s *Store) GetSelection(op, typeKey string) (string, bool, error) {
	var label string
	err := s.db.QueryRow(
		`SELECT label FROM selections WHERE op = ? AND type_key = ?`, op, typeKey,
	).Scan(&label)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading selection cache: %w", err)
	}
	return label, true, nil
}

// PutSelection records the label for (op, typeKey).
func (s *Store) PutSelection(op, typeKey, label string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO selections (op, type_key, label) VALUES (?, ?, ?)`,
		op, typeKey, label,
	)
	if err != nil {
		return fmt.Errorf("writing selection cache: %w", err)
	}
	return nil
}

// Purge drops all recorded selections. Used after a table change makes the
// recorded labels stale.
func (s *Store) Purge() error {
	_, err := s.db.Exec(`DELETE FROM selections`)
	if err != nil {
		return fmt.Errorf("purging selection cache: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
