package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/pricebook/internal/config"
	"github.com/davidbz/pricebook/internal/httpserver/middleware"
	"github.com/davidbz/pricebook/internal/metrics"
	"github.com/davidbz/pricebook/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      *config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	collector   *metrics.Collector
	srv         *http.Server
}

// NewServer creates a new HTTP server. The collector is optional; without it
// /metrics is not served.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
	collector *metrics.Collector,
) *Server {
	return &Server{
		config:      cfg,
		handler:     handler,
		middlewares: middlewares,
		collector:   collector,
		srv:         nil,
	}
}

// Routes builds the request multiplexer with the middleware chain applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/pricing", s.handler.HandlePricing)
	mux.HandleFunc("GET /v1/normalize", s.handler.HandleNormalize)
	mux.HandleFunc("GET /v1/models", s.handler.HandleModels)
	mux.HandleFunc("POST /v1/cost", s.handler.HandleCost)
	mux.HandleFunc("POST /v1/cost/rerank", s.handler.HandleRerankCost)
	mux.HandleFunc("POST /v1/cost/{vendor}", s.handler.HandleVendorCost)
	mux.HandleFunc("POST /v1/estimate", s.handler.HandleEstimate)
	mux.HandleFunc("GET /v1/spend", s.handler.HandleSpend)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)

	if s.collector != nil {
		mux.Handle("GET /metrics", s.collector.Handler())
	}

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server and blocks until it is shut down.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
