package fxcache

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/quantatomai/normalize/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	table := &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"XOF": 558.16, "EUR": 0.92},
		AsOf:  "2026-08-20",
	}
	require.NoError(t, s.Put(Key("USD", ""), table, time.Hour))

	got, ok := s.GetFresh(Key("USD", ""))
	require.True(t, ok)
	assert.Equal(t, "USD", got.Base)
	assert.Equal(t, 558.16, got.Rates["XOF"])
	assert.Equal(t, "2026-08-20", got.AsOf)
}

func TestSQLiteStoreExpiry(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Put("USD", usdTable(), -time.Minute))

	_, ok := s.GetFresh("USD")
	assert.False(t, ok)

	got, ok := s.GetStale("USD")
	require.True(t, ok)
	assert.Equal(t, "USD", got.Base)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Put("USD", usdTable(), time.Hour))
	updated := &domain.FXTable{Base: "USD", Rates: map[string]float64{"EUR": 0.95}}
	require.NoError(t, s.Put("USD", updated, time.Hour))

	got, ok := s.GetFresh("USD")
	require.True(t, ok)
	assert.Equal(t, 0.95, got.Rates["EUR"])
}

func TestSQLiteStoreDeleteExpired(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Put("old", usdTable(), -time.Minute))
	require.NoError(t, s.Put("new", usdTable(), time.Hour))

	deleted, err := s.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, ok := s.GetStale("old")
	assert.False(t, ok)
	_, ok = s.GetFresh("new")
	assert.True(t, ok)
}
