// Package fxcache provides TTL-bounded storage for fetched FX tables.
// The in-memory store is the default; the SQLite store persists tables
// across restarts so stale data can still serve as a fallback.
package fxcache

import (
	"time"

	"github.com/quantatomai/normalize/internal/domain"
)

// Store is the cache contract the FX provider depends on.
// GetFresh honors expiry; GetStale ignores it, because when every source
// is down a stale table is better than no table.
type Store interface {
	GetFresh(key string) (*domain.FXTable, bool)
	GetStale(key string) (*domain.FXTable, bool)
	Put(key string, table *domain.FXTable, ttl time.Duration) error
	DeleteExpired() (int, error)
}

// Key builds the cache key for a base currency, optionally scoped to a
// historical date.
func Key(base, date string) string {
	if date == "" {
		return base
	}
	return base + ":" + date
}
