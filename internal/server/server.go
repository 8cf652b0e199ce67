// Package server exposes the session over HTTP+JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/nhath/pgpeek/internal/db"
)

// Server is the API server.
type Server struct {
	session      *db.Session
	addr         string
	defaultLimit int
	logger       *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Session *db.Session
	Addr    string
	// DefaultLimit caps rows when a request names no limit.
	DefaultLimit int
	Logger       *slog.Logger
}

// New creates a new API server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := cfg.DefaultLimit
	if limit <= 0 {
		limit = db.DefaultRowLimit
	}
	return &Server{
		session:      cfg.Session,
		addr:         cfg.Addr,
		defaultLimit: limit,
		logger:       logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
	)

	SetupRoutes(r, NewHandlers(s.session, s.defaultLimit, s.logger))
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return s.session.Close()
	})

	return eg.Wait()
}
