// Package enrich derives ids and metadata for submitted video URLs.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault/internal/server/cache"
	"github.com/agentstation/tourvault/internal/transport"
	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Fallback metadata used when a lookup yields nothing.
const (
	UnknownTitle         = "Unknown Title"
	NoDescription        = "No description available"
	thumbnailURLTemplate = "https://img.youtube.com/vi/%s/maxresdefault.jpg"
)

// oembed is the subset of an oEmbed response that is used.
type oembed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Enricher turns a source URL into a complete video record.
type Enricher struct {
	transport *transport.Client
	endpoint  string
	timeout   time.Duration
	disabled  bool
	cache     *cache.Cache[oembed]
	logger    *zerolog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithEndpoint sets the oEmbed endpoint.
func WithEndpoint(endpoint string) Option {
	return func(e *Enricher) {
		if endpoint != "" {
			e.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(e *Enricher) {
		e.transport = transport.New(transport.WithHTTPClient(hc))
	}
}

// WithTimeout bounds a single lookup.
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLookups toggles remote metadata lookups. With lookups off every
// record gets the fallback metadata.
func WithLookups(enabled bool) Option {
	return func(e *Enricher) {
		e.disabled = !enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

// New returns an Enricher using the YouTube oEmbed endpoint.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		transport: transport.New(),
		endpoint:  constants.DefaultOEmbedEndpoint,
		timeout:   constants.DefaultOEmbedTimeout,
		cache:     cache.New[oembed](constants.OEmbedCacheTTL, 2*constants.OEmbedCacheTTL),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich builds the record for sourceURL. Only an unusable URL is an
// error; a failed lookup falls back to placeholder metadata.
func (e *Enricher) Enrich(ctx context.Context, sourceURL string) (videos.Video, error) {
	normalized, err := videos.ValidateSourceURL(sourceURL)
	if err != nil {
		return videos.Video{}, err
	}

	id, youtube := YouTubeID(normalized)
	if !youtube {
		id = DeriveID(normalized)
	}

	meta := oembed{}
	if !e.disabled {
		meta, err = e.cache.GetOrLoad(normalized, func() (oembed, error) {
			return e.lookup(ctx, normalized)
		})
		if err != nil {
			e.logger.Debug().Err(err).Str("url", normalized).Msg("Metadata lookup failed; using fallbacks")
			meta = oembed{}
		}
	}

	v := videos.Video{
		ID:          id,
		URL:         normalized,
		Title:       firstNonEmpty(meta.Title, UnknownTitle),
		Description: firstNonEmpty(meta.AuthorName, NoDescription),
		Thumbnail:   meta.ThumbnailURL,
	}
	if v.Thumbnail == "" && youtube {
		v.Thumbnail = fmt.Sprintf(thumbnailURLTemplate, id)
	}
	return v, nil
}

func (e *Enricher) lookup(ctx context.Context, sourceURL string) (oembed, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", sourceURL)
	q.Set("format", "json")

	resp, err := e.transport.Do(ctx, http.MethodGet, e.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return oembed{}, err
	}
	if err := transport.Check(resp); err != nil {
		return oembed{}, err
	}

	var meta oembed
	if err := transport.DecodeResponse(resp, &meta); err != nil {
		return oembed{}, err
	}
	return meta, nil
}

// YouTubeID extracts the video id from a youtu.be short link or a URL with
// a v query parameter.
func YouTubeID(sourceURL string) (string, bool) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", false
	}

	if strings.EqualFold(u.Hostname(), "youtu.be") {
		id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		return id, id != ""
	}
	if id := u.Query().Get("v"); id != "" {
		return id, true
	}
	return "", false
}

// DeriveID returns the id a URL is stored under: the YouTube video id when
// there is one, otherwise a name-based UUID of the URL. Equal URLs always
// map to equal ids.
func DeriveID(sourceURL string) string {
	if id, ok := YouTubeID(sourceURL); ok {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURL)).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
