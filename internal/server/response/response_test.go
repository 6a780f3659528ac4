package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/tourvault/pkg/errors"
)

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Detail
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"id": "a"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"a"}`, rec.Body.String())
}

func TestInfo(t *testing.T) {
	rec := httptest.NewRecorder()
	Info(rec, "Video %s successfully deleted", "a")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Video a successfully deleted"}`, rec.Body.String())
}

func TestDetailHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		detail string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "nope") }, http.StatusBadRequest, "nope"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "gone") }, http.StatusNotFound, "gone"},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, "PUT") }, http.StatusMethodNotAllowed, "Method PUT not allowed"},
		{"unprocessable", func(w http.ResponseWriter) { Unprocessable(w, "bad url") }, http.StatusUnprocessableEntity, "bad url"},
		{"rate limited", RateLimited, http.StatusTooManyRequests, "Too many requests. Please try again later."},
		{"internal", func(w http.ResponseWriter) { InternalError(w, errors.New("secret")) }, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.detail, decodeDetail(t, rec))
		})
	}
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", pkgerrors.NewNotFoundError("video", "abc"), http.StatusNotFound, "Video abc not found"},
		{"already exists", pkgerrors.NewAlreadyExistsError("video", "abc"), http.StatusBadRequest, "Video already exists"},
		{"validation", pkgerrors.NewValidationError("url", "x", "must be an absolute http(s) URL"), http.StatusUnprocessableEntity, ""},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			detail := decodeDetail(t, rec)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, detail)
			} else {
				assert.NotEmpty(t, detail)
			}
		})
	}
}
