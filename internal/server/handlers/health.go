package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/tourvault/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "tourvault",
		"videos":  h.store.Len(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
