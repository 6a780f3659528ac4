package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/tourvault/internal/server/enrich"
	"github.com/agentstation/tourvault/internal/server/response"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

// maxCreateBody caps the size of a create request body.
const maxCreateBody = 64 << 10

// createRequest is the body of POST /videos.
type createRequest struct {
	URL string `json:"url"`
}

// HandleListVideos handles GET /videos.
func (h *Handlers) HandleListVideos(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.store.List())
}

// HandleCreateVideo handles POST /videos. The record id is derived from the
// URL, so submitting a URL twice is rejected as a duplicate before any
// metadata lookup happens.
func (h *Handlers) HandleCreateVideo(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req createRequest
	body := io.LimitReader(r.Body, maxCreateBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		response.Unprocessable(w, "Request body must be a JSON object with a url field")
		return
	}

	normalized, err := videos.ValidateSourceURL(req.URL)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if _, exists := h.store.Get(enrich.DeriveID(normalized)); exists {
		response.BadRequest(w, "Video already exists")
		return
	}

	video, err := h.enricher.Enrich(r.Context(), normalized)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.store.Insert(video); err != nil {
		if !errors.IsAlreadyExists(err) {
			logger.Error().Err(err).Str("video_id", video.ID).Msg("Failed to store video")
		}
		response.ErrorFromType(w, err)
		return
	}

	logger.Info().Str("video_id", video.ID).Str("title", video.Title).Msg("Video added")
	response.OK(w, video)
}

// HandleDeleteVideo handles DELETE /videos/{id}.
func (h *Handlers) HandleDeleteVideo(w http.ResponseWriter, r *http.Request, id string) {
	logger := logging.FromContext(r.Context())

	if _, err := h.store.Delete(id); err != nil {
		if !errors.IsNotFound(err) {
			logger.Error().Err(err).Str("video_id", id).Msg("Failed to delete video")
		}
		response.ErrorFromType(w, err)
		return
	}

	logger.Info().Str("video_id", id).Msg("Video deleted")
	response.Info(w, "Video %s successfully deleted", id)
}
