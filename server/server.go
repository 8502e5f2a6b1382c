// Package server exposes the completion endpoint over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"jadoo/model"
)

// Options configures a Server. A nil Provider means no credential is
// configured; the server still starts and every chat request reports it.
type Options struct {
	Listen       string
	Provider     model.Provider
	ProviderName string
	Model        string
	MaxTokens    int
	Temperature  float64
	Logger       zerolog.Logger

	// PickDemo returns an index in [0, n). Defaults to math/rand/v2.
	PickDemo func(n int) int
}

type Server struct {
	opts     Options
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	server   *http.Server
}

func New(opts Options) *Server {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 0.7
	}
	if opts.PickDemo == nil {
		opts.PickDemo = rand.IntN
	}
	if opts.Provider != nil {
		opts.ProviderName = opts.Provider.Name()
		opts.Model = opts.Provider.GetModel()
	}

	reg := prometheus.NewRegistry()
	return &Server{
		opts:     opts,
		logger:   opts.Logger.With().Str("component", "server").Logger(),
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/personalities", s.handlePersonalities)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s.withLogging(mux)
}

// shutdownTimeout bounds how long a cancelled server waits for in-flight
// completions to finish.
const shutdownTimeout = 2 * time.Minute

// Start listens on Options.Listen and serves until Shutdown is called or ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln. Cancelling ctx stops accepting connections and drains
// in-flight requests; their own contexts are not cancelled by it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	if s.opts.Provider == nil {
		s.logger.Warn().Msg("no API key configured; chat requests will fail until one is set")
	}
	s.logger.Info().
		Str("listen", ln.Addr().String()).
		Str("provider", s.opts.ProviderName).
		Str("model", s.opts.Model).
		Msg("starting completion endpoint")

	served := make(chan error, 1)
	go func() { served <- s.server.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("draining completion endpoint")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to drain requests: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write JSON response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) errorResponse(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, errorBody{Error: message})
}

type healthResponse struct {
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Provider:   s.opts.ProviderName,
		Model:      s.opts.Model,
		Configured: s.opts.Provider != nil,
	})
}

func (s *Server) handlePersonalities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, model.Personalities())
}
