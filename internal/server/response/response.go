// Package response writes the JSON bodies of the video store API.
// Successful responses carry the resource itself; failures carry a single
// human-readable detail string.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agentstation/tourvault/pkg/errors"
)

// Error is the body of every failed request.
type Error struct {
	Detail string `json:"detail"`
}

// Message is the body of a successful request that returns no resource.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200 status.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Info writes a message body with 200 status.
func Info(w http.ResponseWriter, format string, args ...any) {
	JSON(w, http.StatusOK, Message{Message: fmt.Sprintf(format, args...)})
}

// Detail writes an error body with the given status code.
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, Error{Detail: detail})
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, detail string) {
	Detail(w, http.StatusBadRequest, detail)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, detail string) {
	Detail(w, http.StatusNotFound, detail)
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	Detail(w, http.StatusMethodNotAllowed, "Method "+method+" not allowed")
}

// Unprocessable writes a 422 error response.
func Unprocessable(w http.ResponseWriter, detail string) {
	Detail(w, http.StatusUnprocessableEntity, detail)
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter) {
	Detail(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	Detail(w, http.StatusInternalServerError, "Internal server error")
}

// ErrorFromType maps typed errors to the store's status codes.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err):
		if nf, ok := errors.AsNotFound(err); ok {
			NotFound(w, fmt.Sprintf("Video %s not found", nf.ID))
			return
		}
		NotFound(w, "Not found")
	case errors.IsAlreadyExists(err):
		BadRequest(w, "Video already exists")
	case errors.IsValidationError(err):
		Unprocessable(w, err.Error())
	default:
		InternalError(w, err)
	}
}
