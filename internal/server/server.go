// Package server exposes the freight and address APIs over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/belira/freight/internal/telemetry"
	"github.com/belira/freight/pkg/address"
	"github.com/belira/freight/pkg/freight"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the freight service.
type Server struct {
	port     int
	quotes   *freight.Service
	resolver *address.Resolver
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	validate *validator.Validate
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance and wires quote-flow metrics.
func New(cfg Config, quotes *freight.Service, resolver *address.Resolver, logger *otelzap.Logger) *Server {
	metrics := telemetry.NewMetrics()
	quotes.SetObserver(&metricsObserver{metrics: metrics})

	return &Server{
		port:     cfg.Port,
		quotes:   quotes,
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler builds the route table. Split from Run so tests can exercise the
// API without binding a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// API
	mux.HandleFunc("POST /api/freight/calculate", s.handleCalculate)
	mux.HandleFunc("GET /api/address/{cep}", s.handleAddress)
	mux.HandleFunc("GET /api/freight/cache/stats", s.handleCacheStats)
	mux.HandleFunc("DELETE /api/freight/cache", s.handleCacheClear)

	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// metricsObserver feeds freight.Service events into Prometheus.
type metricsObserver struct {
	metrics *telemetry.Metrics
}

func (o *metricsObserver) CacheHit()  { o.metrics.CacheHits.Inc() }
func (o *metricsObserver) CacheMiss() { o.metrics.CacheMisses.Inc() }
func (o *metricsObserver) ProviderError(provider string) {
	o.metrics.RecordProviderError(provider, "rate_call")
}
