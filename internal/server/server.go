package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"alertdash/internal/config"
	"alertdash/internal/dashboard"
	"alertdash/internal/metrics"
	"alertdash/internal/render"
)

// Title is the heading of the dashboard page.
const Title = "Telemetry Alerts"

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg     *config.Config
	srv     *http.Server
	handler *Handler
	logger  *slog.Logger
}

// New creates a new server instance serving snap.
func New(cfg *config.Config, snap *dashboard.Snapshot, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	handler := NewHandler(snap, render.NewLinks(cfg.Links), Title, m, logger)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		cfg:     cfg,
		srv:     srv,
		handler: handler,
		logger:  logger,
	}
}

// Start starts the HTTP server. It returns nil once Shutdown has been called.
func (s *Server) Start() error {
	s.logger.Info("Server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.srv.Shutdown(ctx)
}
