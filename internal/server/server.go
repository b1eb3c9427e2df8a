// Package server exposes the batch pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/bankfusion/bankfusion/internal/batch"
)

// StatusMessage is the health-check payload.
const StatusMessage = "BankFusion backend running"

// Runner runs one batch over a statement root.
type Runner interface {
	Run(ctx context.Context, root string) (batch.Run, error)
}

// Options configures a Server. A nil Gatherer leaves /metrics unrouted.
type Options struct {
	Root           string
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	Log            zerolog.Logger
}

// Server triggers batch runs. Runs never overlap, whether started over
// HTTP or by the scheduler.
type Server struct {
	runner Runner
	opts   Options
	mu     sync.Mutex
}

// New creates a Server.
func New(runner Runner, opts Options) *Server {
	return &Server{runner: runner, opts: opts}
}

// ProcessAll runs one batch, waiting for any batch already in flight.
func (s *Server) ProcessAll(ctx context.Context) (batch.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.Run(ctx, s.opts.Root)
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(Recovery(s.opts.Log))
	r.Use(Logger(s.opts.Log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/", s.handleStatus)
	r.Post("/process-all", s.handleProcessAll)
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": StatusMessage})
}

func (s *Server) handleProcessAll(w http.ResponseWriter, r *http.Request) {
	run, err := s.ProcessAll(r.Context())
	switch {
	case errors.Is(err, batch.ErrRootNotFound):
		// Reported in the body; the trigger itself succeeded.
		WriteError(w, http.StatusOK, fmt.Sprintf("%s directory not found", filepath.Base(s.opts.Root)))
	case err != nil:
		s.opts.Log.Error().Err(err).Msg("batch failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		WriteJSON(w, http.StatusOK, run.Results)
	}
}

// ListenAndServe serves the router on addr until ctx is done, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Log.Info().Str("addr", addr).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.opts.Log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
