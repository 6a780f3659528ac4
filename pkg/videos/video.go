// Package videos defines the catalog record and its identity rules.
package videos

import (
	"net/url"
	"strings"

	"github.com/agentstation/tourvault/pkg/errors"
)

// FallbackThumbnail is rendered in place of a missing or broken thumbnail.
const FallbackThumbnail = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMjAwIiBoZWlnaHQ9IjEyMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMjAwIiBoZWlnaHQ9IjEyMCIgZmlsbD0iI2Y1ZjJlZCIvPjx0ZXh0IHg9IjUwJSIgeT0iNTAlIiBkb21pbmFudC1iYXNlbGluZT0ibWlkZGxlIiB0ZXh0LWFuY2hvcj0ibWlkZGxlIiBmaWxsPSIjNjY2Ij5WaWRlbyBTbmlwcGV0PC90ZXh0Pjwvc3ZnPg=="

// Video is one catalog entry. The ID is assigned by the remote store and
// never changes once assigned.
type Video struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Thumbnail   string `json:"thumbnail" yaml:"thumbnail"`
	URL         string `json:"url" yaml:"url"`
}

// ThumbnailURL returns the thumbnail to display, substituting
// FallbackThumbnail when none is stored. The record itself is not modified.
func (v Video) ThumbnailURL() string {
	if strings.TrimSpace(v.Thumbnail) == "" {
		return FallbackThumbnail
	}
	return v.Thumbnail
}

// ValidateSourceURL checks a user-submitted source URL before it may leave
// the client and returns it trimmed. Failures are *errors.ValidationError
// carrying the original input.
func ValidateSourceURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.NewValidationError("url", raw, "cannot be empty")
	}

	u, err := url.ParseRequestURI(trimmed)
	if err != nil || u.Host == "" {
		return "", errors.NewValidationError("url", raw, "must be an absolute http(s) URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", errors.NewValidationError("url", raw, "must be an absolute http(s) URL")
	}

	return trimmed, nil
}
