// Package app provides the application context and dependency management
// for the tourvault CLI. It centralizes configuration, logging and the
// lifecycle of the catalog client.
package app

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault"
	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/server"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/gateway"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the tourvault application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Catalog client (lazy-initialized, singleton)
	mu      sync.Mutex
	gateway gateway.Gateway
	client  tourvault.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// PageSize returns the configured page size.
func (a *App) PageSize() int {
	return a.config.PageSize
}

// MaxVisiblePages returns the configured pager width.
func (a *App) MaxVisiblePages() int {
	return a.config.MaxVisiblePages
}

// ServerConfig returns the reference store configuration.
func (a *App) ServerConfig() server.Config {
	return a.config.ServerConfig()
}

// Client returns the catalog client, creating it lazily if needed.
func (a *App) Client() (tourvault.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	gw := a.gateway
	if gw == nil {
		httpGateway, err := gateway.NewHTTP(a.config.BaseURL,
			gateway.WithHTTPClient(&http.Client{Timeout: a.config.Timeout}),
			gateway.WithUserAgent("tourvault/"+a.version),
		)
		if err != nil {
			return nil, errors.WrapResource("create", "gateway", a.config.BaseURL, err)
		}
		gw = httpGateway
	}

	// Periodic reloads stay off until a command asks for them.
	client, err := tourvault.New(gw,
		tourvault.WithLogger(a.logger),
		tourvault.WithAutoRefreshInterval(a.config.RefreshInterval),
		tourvault.WithAutoRefresh(false),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "client", a.config.BaseURL, err)
	}

	a.client = client
	return client, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	client := a.client
	a.mu.Unlock()

	if client != nil {
		if err := client.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
			return err
		}
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithGateway sets the gateway the client talks to (useful for testing).
func WithGateway(gw gateway.Gateway) Option {
	return func(a *App) error {
		a.gateway = gw
		return nil
	}
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
