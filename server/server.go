// Package server exposes the pool reports as a read-only JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/consortium"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ShutdownTimeout bounds the time given to in-flight requests on shutdown.
const ShutdownTimeout = 10 * time.Second

// Snapshotter provides a consistent view of the pool. It is implemented by *store.SQLite.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*consortium.Pool, error)
}

// Server serves the reports of a pool. Every request works on a fresh
// snapshot; identical concurrent requests share the same computation.
type Server struct {
	store   Snapshotter
	group   singleflight.Group
	metrics *metrics
	router  chi.Router
}

// New creates a server reading from store. Metrics are registered on registry.
func New(store Snapshotter, registry *prometheus.Registry) *Server {
	s := &Server{
		store:   store,
		metrics: newMetrics(registry),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.getSummary)
		r.Get("/clients", s.getClients)
		r.Get("/clients/{id}", s.getClient)
		r.Get("/profits", s.getProfits)
		r.Get("/allocations", s.getAllocations)
		r.Get("/timeseries", s.getTimeseries)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such route " + r.URL.Path})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// compute snapshots the pool and runs fn on it. Concurrent calls with the
// same key share the result.
func (s *Server) compute(ctx context.Context, report, key string, fn func(*consortium.Pool) (any, error)) (any, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		timer := prometheus.NewTimer(s.metrics.compute.WithLabelValues(report))
		defer timer.ObserveDuration()

		// A cancelled caller must not fail the callers sharing this computation.
		pool, err := s.store.Snapshot(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.metrics.observe(pool.Summary())
		return fn(pool)
	})
	return v, err
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("cannot write response")
	}
}
