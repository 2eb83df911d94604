// Package server exposes the splitledger REST API over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
}

// New constructs a Server listening on addr with the given handler.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins listening for HTTP traffic. It blocks until the server stops.
func (s *Server) Start() error {
	slog.Info("starting http server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully terminates all active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
