package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadSnapshot returns the value stored under key, or nil when the key has
// never been written.
func (s *Store) LoadSnapshot(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return []byte(value), nil
}

// SaveSnapshot overwrites the value stored under key.
func (s *Store) SaveSnapshot(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// SnapshotUpdatedAt reports when key was last written. It returns the zero
// time when the key has never been written.
func (s *Store) SnapshotUpdatedAt(key string) (time.Time, error) {
	var updated string
	err := s.db.QueryRow(`SELECT updated_at FROM snapshots WHERE key = ?`, key).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("snapshot %q updated_at: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot %q updated_at: %w", key, err)
	}
	return t, nil
}
