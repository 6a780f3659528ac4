// Package server provides the reference HTTP implementation of the video
// store that the catalog client talks to.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault/internal/server/enrich"
	"github.com/agentstation/tourvault/internal/server/handlers"
	"github.com/agentstation/tourvault/internal/server/middleware"
	"github.com/agentstation/tourvault/internal/server/store"
	"github.com/agentstation/tourvault/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store    *store.Store
	enricher handlers.Enricher
	limiter  *middleware.RateLimiter
	logger   *zerolog.Logger
	config   Config
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithStore replaces the store opened from the config.
func WithStore(s *store.Store) Option {
	return func(srv *Server) {
		srv.store = s
	}
}

// WithEnricher replaces the oEmbed enricher.
func WithEnricher(e handlers.Enricher) Option {
	return func(srv *Server) {
		srv.enricher = e
	}
}

// New creates a new server instance with the given configuration.
func New(cfg Config, logger *zerolog.Logger, opts ...Option) (*Server, error) {
	logger.Debug().Msg("Creating new server instance")

	s := &Server{
		logger: logger,
		config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		if cfg.DataFile == "" {
			s.store = store.NewMemory()
		} else {
			opened, err := store.Open(cfg.DataFile)
			if err != nil {
				return nil, err
			}
			s.store = opened
			logger.Debug().
				Str("path", cfg.DataFile).
				Int("videos", opened.Len()).
				Msg("Loaded video snapshot")
		}
	}

	if s.enricher == nil {
		s.enricher = enrich.New(
			enrich.WithEndpoint(cfg.OEmbedEndpoint),
			enrich.WithLookups(cfg.Enrich),
			enrich.WithLogger(logger),
		)
	}

	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	s.handler = s.setupRouter()

	logger.Debug().Msg("Server instance created successfully")
	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the server's record store.
func (s *Server) Store() *store.Store {
	return s.store
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		s.Close()
		if err != nil {
			return errors.WrapResource("serve", "server", ln.Addr().String(), err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return errors.WrapResource("shutdown", "server", ln.Addr().String(), err)
	}
	s.logger.Info().Msg("Server stopped gracefully")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.Addr)
	if err != nil {
		return errors.WrapResource("listen", "server", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Close releases background resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
