// Package constants provides shared constants used throughout the tourvault codebase.
// This includes timeouts, paging defaults, file permissions, and the wire names
// of the remote store contract.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the video store
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultOEmbedTimeout bounds a single metadata lookup during enrichment
	DefaultOEmbedTimeout = 10 * time.Second

	// RefreshContextTimeout is the timeout for each background collection refresh
	RefreshContextTimeout = 1 * time.Minute

	// DefaultRefreshInterval is the interval used when auto-refresh is enabled without an explicit interval
	DefaultRefreshInterval = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the store server drains connections on shutdown
	ShutdownTimeout = 5 * time.Second

	// OEmbedCacheTTL is how long enrichment results are kept
	OEmbedCacheTTL = 1 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Paging constants mirror the layouts of the catalog views.
const (
	// DefaultPageSize is the number of videos per page in the store view
	DefaultPageSize = 8

	// SearchPageSize is the number of videos per page in the search view
	SearchPageSize = 4

	// DefaultMaxVisiblePages is the number of direct page links rendered before "Next"
	DefaultMaxVisiblePages = 3
)

// Remote store contract.
const (
	// DefaultBaseURL is where the video store listens by default
	DefaultBaseURL = "http://localhost:8000"

	// VideosResource is the base resource path of the video store
	VideosResource = "videos"

	// DefaultListenAddr is the bind address of the bundled store server
	DefaultListenAddr = ":8000"

	// DefaultOEmbedEndpoint is the YouTube oEmbed endpoint used for enrichment
	DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

	// DefaultRateLimit is requests per minute per IP for the store server (0 disables)
	DefaultRateLimit = 120

	// DefaultRemoveConcurrency bounds concurrent deletes issued by the remove command
	DefaultRemoveConcurrency = 4
)
