package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite persists keyed JSON values in a single-table SQLite database.
// A mutex serializes every access: read-then-write sequences such as
// first-access seeding and counter increments are not atomic at the SQL
// level and would lose updates without it.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the store at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, seeding it first when absent.
func (s *SQLite) Get(key string, seed, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		encoded, err := json.Marshal(seed)
		if err != nil {
			return fmt.Errorf("failed to encode seed for %q: %w", key, err)
		}
		if err := s.setLocked(key, string(encoded)); err != nil {
			return err
		}
		raw = string(encoded)
	} else if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// Set persists value under key, replacing any previous value.
func (s *SQLite) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	return s.setLocked(key, string(encoded))
}

func (s *SQLite) setLocked(key, encoded string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, encoded,
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
