package fxcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantatomai/normalize/internal/domain"
)

// SQLiteStore persists FX tables as JSON blobs with expiration
// timestamps. The caller owns the *sql.DB and its driver registration;
// the store only needs a handle.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store on db and ensures its schema exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	const schema = `CREATE TABLE IF NOT EXISTS fx_tables (
		key        TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create fx_tables schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// GetFresh returns the table for key only if expires_at is in the future.
func (s *SQLiteStore) GetFresh(key string) (*domain.FXTable, bool) {
	return s.get(key, true)
}

// GetStale returns the table for key regardless of expiration. Use as a
// fallback when live fetches fail - stale data is better than no data.
func (s *SQLiteStore) GetStale(key string) (*domain.FXTable, bool) {
	return s.get(key, false)
}

func (s *SQLiteStore) get(key string, freshOnly bool) (*domain.FXTable, bool) {
	query := "SELECT data FROM fx_tables WHERE key = ?"
	args := []interface{}{key}
	if freshOnly {
		query += " AND expires_at > ?"
		args = append(args, time.Now().Unix())
	}

	var data string
	if err := s.db.QueryRow(query, args...).Scan(&data); err != nil {
		return nil, false
	}

	var table domain.FXTable
	if err := json.Unmarshal([]byte(data), &table); err != nil {
		return nil, false
	}
	return &table, true
}

// Put upserts table under key with expiration now+ttl.
func (s *SQLiteStore) Put(key string, table *domain.FXTable, ttl time.Duration) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal FX table: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO fx_tables (key, data, expires_at) VALUES (?, ?, ?)",
		key, string(data), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store FX table: %w", err)
	}
	return nil
}

// DeleteExpired removes all rows past their expiration.
func (s *SQLiteStore) DeleteExpired() (int, error) {
	result, err := s.db.Exec("DELETE FROM fx_tables WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired FX tables: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted FX tables: %w", err)
	}
	return int(deleted), nil
}
