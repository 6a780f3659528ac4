// Package handlers provides HTTP request handlers for the video store API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault/internal/server/store"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Enricher builds a complete record from a submitted URL.
type Enricher interface {
	Enrich(ctx context.Context, sourceURL string) (videos.Video, error)
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store     *store.Store
	enricher  Enricher
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(s *store.Store, enricher Enricher, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		store:     s,
		enricher:  enricher,
		logger:    logger,
		startTime: time.Now(),
	}
}
