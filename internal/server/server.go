// Package server exposes the normalization engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quantatomai/normalize/internal/batch"
	"github.com/quantatomai/normalize/internal/domain"
)

// RateSource supplies FX tables to the handlers. *fx.Provider satisfies it.
type RateSource interface {
	Fetch(ctx context.Context, base string) (*domain.FXTable, error)
	FetchHistorical(ctx context.Context, base, date string) (*domain.FXTable, error)
}

// Config holds server configuration.
type Config struct {
	Log     zerolog.Logger
	Port    int
	Rates   RateSource
	Batch   *batch.Processor
	Workers int
	DevMode bool
}

// Server is the engine's HTTP front.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	rates   RateSource
	batch   *batch.Processor
	workers int
}

// New creates the server and mounts its routes.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		rates:   cfg.Rates,
		batch:   cfg.Batch,
		workers: cfg.Workers,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	if cfg.DevMode {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/normalize", s.handleNormalize)
		r.Post("/batch", s.handleBatch)
		r.Post("/aggregate", s.handleAggregate)
		r.Get("/rates/{base}", s.handleRates)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
