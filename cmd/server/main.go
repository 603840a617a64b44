// Package main starts the indicator normalization service: an HTTP API
// over the unit parser, normalization pipeline, batch processor and FX
// provider, with a persistent FX cache.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quantatomai/normalize/internal/batch"
	"github.com/quantatomai/normalize/internal/config"
	"github.com/quantatomai/normalize/internal/fx"
	"github.com/quantatomai/normalize/internal/fxcache"
	"github.com/quantatomai/normalize/internal/server"
	"github.com/quantatomai/normalize/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}

	// The FX cache survives restarts; stale rows still serve as a
	// fallback tier when every source is down.
	db, err := sql.Open("sqlite", cfg.CachePath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open FX cache database")
	}
	defer db.Close()

	store, err := fxcache.NewSQLiteStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize FX cache")
	}

	provider := fx.New(cfg.FXConfig(), store, log)
	processor := batch.NewProcessor(log)

	srv := server.New(server.Config{
		Log:     log,
		Port:    cfg.Port,
		Rates:   provider,
		Batch:   processor,
		Workers: cfg.BatchWorkers,
		DevMode: cfg.DevMode,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}
