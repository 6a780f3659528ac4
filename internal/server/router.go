package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/tourvault/internal/server/handlers"
	"github.com/agentstation/tourvault/internal/server/middleware"
	"github.com/agentstation/tourvault/internal/server/response"
	"github.com/agentstation/tourvault/pkg/constants"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.store, s.enricher, s.logger)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	collection := "/" + constants.VideosResource

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/health", h.HandleHealth)

	mux.HandleFunc(collection, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.HandleListVideos(w, r)
		case http.MethodPost:
			h.HandleCreateVideo(w, r)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	mux.HandleFunc(collection+"/", func(w http.ResponseWriter, r *http.Request) {
		id := extractPathParam(r.URL.EscapedPath(), collection+"/")
		switch {
		case id == "":
			if r.Method == http.MethodGet {
				h.HandleListVideos(w, r)
				return
			}
			response.NotFound(w, "Not found")
		case r.Method == http.MethodDelete:
			h.HandleDeleteVideo(w, r, id)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// extractPathParam returns the unescaped first path segment after prefix.
// escaped must be the escaped request path so that an encoded slash stays
// inside the segment.
func extractPathParam(escaped, prefix string) string {
	trimmed := strings.TrimPrefix(escaped, prefix)
	segment, _, _ := strings.Cut(trimmed, "/")
	if unescaped, err := url.PathUnescape(segment); err == nil {
		return unescaped
	}
	return segment
}
