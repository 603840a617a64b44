// Package fx acquires FX rate tables from prioritized sources with
// retries, per-attempt deadlines, per-source rate limits, a TTL cache and
// fallback tiers. It is the only part of the engine that performs I/O.
package fx

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/quantatomai/normalize/internal/clients/fxapi"
	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/fxcache"
)

// FX table sources.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// SourceConfig describes one upstream rate source.
type SourceConfig struct {
	ID       string
	Endpoint string
	APIKey   string
	Format   fxapi.Format
	// Priority orders sources; lower tries first.
	Priority int
	// RatePerSecond caps request rate against this source; 0 = unlimited.
	RatePerSecond float64
	Burst         int
}

// Config holds the provider's fetch policy. The caller injects all of it;
// the provider has no environment or global state.
type Config struct {
	Sources      []SourceConfig
	Fallback     *domain.FXTable
	CacheEnabled bool
	CacheTTL     time.Duration
	// Retries is attempts per source; backoff doubles each attempt.
	Retries int
	// Timeout is the per-attempt deadline.
	Timeout time.Duration
}

// DefaultConfig returns a fetch policy suitable for interactive use.
func DefaultConfig() Config {
	return Config{
		CacheEnabled: true,
		CacheTTL:     time.Hour,
		Retries:      3,
		Timeout:      10 * time.Second,
	}
}

type source struct {
	cfg     SourceConfig
	limiter *rate.Limiter
}

// Provider fetches and caches FX tables. The cache is the engine's only
// mutable shared state; the store serializes its own access.
type Provider struct {
	cfg     Config
	sources []source
	client  *fxapi.Client
	cache   fxcache.Store
	log     zerolog.Logger

	// sleep is the backoff delay, injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a provider. A nil store gets an in-memory cache.
func New(cfg Config, store fxcache.Store, log zerolog.Logger) *Provider {
	if store == nil {
		store = fxcache.NewMemoryStore()
	}

	sources := make([]source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		var limiter *rate.Limiter
		if sc.RatePerSecond > 0 {
			burst := sc.Burst
			if burst <= 0 {
				burst = 1
			}
			limiter = rate.NewLimiter(rate.Limit(sc.RatePerSecond), burst)
		}
		sources = append(sources, source{cfg: sc, limiter: limiter})
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].cfg.Priority < sources[j].cfg.Priority
	})

	return &Provider{
		cfg:     cfg,
		sources: sources,
		client:  fxapi.NewClient(log),
		cache:   store,
		log:     log.With().Str("component", "fx_provider").Logger(),
		sleep:   sleepContext,
	}
}

// Fetch returns the current rate table for base.
//
// Tiering: fresh cache, then each source by ascending priority with
// retries, then stale cache, then the configured fallback table. Only
// when all of those are absent does it fail with ErrFXUnavailable.
func (p *Provider) Fetch(ctx context.Context, base string) (*domain.FXTable, error) {
	return p.fetch(ctx, base, "")
}

// FetchHistorical returns the rate table as of date (YYYY-MM-DD). Rates
// are point-in-time; the provider never interpolates between dates.
func (p *Provider) FetchHistorical(ctx context.Context, base, date string) (*domain.FXTable, error) {
	return p.fetch(ctx, base, date)
}

func (p *Provider) fetch(ctx context.Context, base, date string) (*domain.FXTable, error) {
	key := fxcache.Key(base, date)

	if p.cfg.CacheEnabled {
		if table, ok := p.cache.GetFresh(key); ok {
			p.log.Debug().Str("base", base).Str("date", date).Msg("Cache hit")
			return table, nil
		}
	}

	for _, src := range p.sources {
		table, err := p.fetchFromSource(ctx, src, base, date)
		if err != nil {
			p.log.Warn().
				Err(err).
				Str("source", src.cfg.ID).
				Str("base", base).
				Msg("Source failed, trying next")
			continue
		}

		table.Source = SourceLive
		table.SourceID = src.cfg.ID
		if p.cfg.CacheEnabled {
			if err := p.cache.Put(key, table, p.cfg.CacheTTL); err != nil {
				p.log.Warn().Err(err).Str("key", key).Msg("Failed to cache FX table")
			}
		}

		p.log.Info().
			Str("source", src.cfg.ID).
			Str("base", base).
			Int("rates", len(table.Rates)).
			Msg("Fetched FX table")
		return table, nil
	}

	// All sources failed; stale data is better than no data.
	if p.cfg.CacheEnabled {
		if table, ok := p.cache.GetStale(key); ok {
			stale := *table
			stale.Source = SourceFallback
			p.log.Warn().Str("base", base).Msg("All sources failed, using stale cached table")
			return &stale, nil
		}
	}

	if p.cfg.Fallback != nil {
		fallback := *p.cfg.Fallback
		fallback.Source = SourceFallback
		p.log.Warn().Str("base", base).Msg("All sources failed, using fallback table")
		return &fallback, nil
	}

	return nil, fmt.Errorf("%w: all sources failed for %s", domain.ErrFXUnavailable, base)
}

// fetchFromSource tries one source up to Retries times with exponential
// backoff (2^attempt seconds) and a per-attempt deadline.
func (p *Provider) fetchFromSource(ctx context.Context, src source, base, date string) (*domain.FXTable, error) {
	attempts := p.cfg.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if err := p.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}
		if src.limiter != nil {
			if err := src.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		table, err := p.attempt(ctx, src, base, date)
		if err == nil {
			return table, nil
		}
		lastErr = err

		// Cancellation aborts the in-flight fetch and counts as a source
		// failure; the caller falls through to the next tier.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (p *Provider) attempt(ctx context.Context, src source, base, date string) (*domain.FXTable, error) {
	attemptCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	if date != "" {
		return p.client.FetchHistorical(attemptCtx, src.cfg.Endpoint, src.cfg.APIKey, src.cfg.Format, date)
	}
	return p.client.FetchLatest(attemptCtx, src.cfg.Endpoint, src.cfg.APIKey, src.cfg.Format, base)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
