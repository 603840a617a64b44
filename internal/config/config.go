// Package config loads engine configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantatomai/normalize/internal/clients/fxapi"
	"github.com/quantatomai/normalize/internal/fx"
)

// Config holds the engine's runtime configuration.
type Config struct {
	// DataDir is the base directory for the FX cache database. Always
	// absolute after Load.
	DataDir  string
	LogLevel string
	Port     int
	DevMode  bool

	// BatchWorkers bounds batch concurrency; 0 defers to the batch layer's
	// default.
	BatchWorkers int

	FXSources  []fx.SourceConfig
	FXCacheTTL time.Duration
	FXRetries  int
	FXTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv("NORMALIZE_DATA_DIR", "./data"),
		LogLevel:     getEnv("NORMALIZE_LOG_LEVEL", "info"),
		Port:         getEnvInt("NORMALIZE_PORT", 8090),
		DevMode:      getEnvBool("NORMALIZE_DEV_MODE", false),
		BatchWorkers: getEnvInt("NORMALIZE_BATCH_WORKERS", 0),
		FXCacheTTL:   getEnvDuration("FX_CACHE_TTL", time.Hour),
		FXRetries:    getEnvInt("FX_RETRIES", 3),
		FXTimeout:    getEnvDuration("FX_TIMEOUT", 10*time.Second),
	}

	abs, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir %q: %w", cfg.DataDir, err)
	}
	cfg.DataDir = abs

	cfg.FXSources = loadSources()
	return cfg, nil
}

// loadSources reads the prioritized FX sources. FX_PRIMARY_* is tried
// first, FX_SECONDARY_* after it; either may be absent.
func loadSources() []fx.SourceConfig {
	var sources []fx.SourceConfig
	for i, prefix := range []string{"FX_PRIMARY", "FX_SECONDARY"} {
		endpoint := os.Getenv(prefix + "_ENDPOINT")
		if endpoint == "" {
			continue
		}
		sources = append(sources, fx.SourceConfig{
			ID:            getEnv(prefix+"_ID", prefix),
			Endpoint:      endpoint,
			APIKey:        os.Getenv(prefix + "_API_KEY"),
			Format:        fxapi.Format(getEnv(prefix+"_FORMAT", string(fxapi.FormatECB))),
			Priority:      i + 1,
			RatePerSecond: getEnvFloat(prefix+"_RATE_LIMIT", 0),
		})
	}
	return sources
}

// FXConfig builds the provider fetch policy from the loaded values.
func (c *Config) FXConfig() fx.Config {
	return fx.Config{
		Sources:      c.FXSources,
		CacheEnabled: true,
		CacheTTL:     c.FXCacheTTL,
		Retries:      c.FXRetries,
		Timeout:      c.FXTimeout,
	}
}

// CachePath is the location of the persistent FX cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "fxcache.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
