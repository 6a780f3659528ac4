// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault"
	"github.com/agentstation/tourvault/internal/server"
)

// Interface defines what commands need from the application.
type Interface interface {
	// Client returns the catalog client, creating it lazily if needed.
	// The collection is empty until the caller loads it.
	Client() (tourvault.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// PageSize returns the configured number of records per page.
	PageSize() int

	// MaxVisiblePages returns how many page links the pager shows.
	MaxVisiblePages() int

	// ServerConfig returns the reference store configuration.
	ServerConfig() server.Config

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
