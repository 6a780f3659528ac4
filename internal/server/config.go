package server

import (
	"time"

	"github.com/agentstation/tourvault/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// DataFile is the YAML snapshot path. Empty keeps records in memory.
	DataFile string

	// Enrichment settings
	Enrich         bool
	OEmbedEndpoint string

	// CORS settings; no origins means the localhost development defaults
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per IP (0 to disable)
	RateLimit int

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            constants.DefaultListenAddr,
		Enrich:          true,
		OEmbedEndpoint:  constants.DefaultOEmbedEndpoint,
		CORSEnabled:     true,
		RateLimit:       constants.DefaultRateLimit,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: constants.ShutdownTimeout,
	}
}
