package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault"
	"github.com/agentstation/tourvault/internal/server"
	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ClientFunc          func() (tourvault.Client, error)
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	PageSizeFunc        func() int
	MaxVisiblePagesFunc func() int
	ServerConfigFunc    func() server.Config
	VersionFunc         func() string
}

var _ Interface = (*Mock)(nil)

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (tourvault.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// PageSize returns the mock page size or the default.
func (m *Mock) PageSize() int {
	if m.PageSizeFunc != nil {
		return m.PageSizeFunc()
	}
	return constants.DefaultPageSize
}

// MaxVisiblePages returns the mock value or the default.
func (m *Mock) MaxVisiblePages() int {
	if m.MaxVisiblePagesFunc != nil {
		return m.MaxVisiblePagesFunc()
	}
	return constants.DefaultMaxVisiblePages
}

// ServerConfig returns the mock config or the server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Version returns the mock version or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
