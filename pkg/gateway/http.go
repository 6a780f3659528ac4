package gateway

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/tourvault/internal/transport"
	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Compile-time interface check.
var _ Gateway = (*HTTP)(nil)

// HTTP talks to a video store over its JSON API rooted at <base>/videos.
type HTTP struct {
	base      string
	transport *transport.Client
}

// HTTPOption configures an HTTP gateway.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	client    *http.Client
	userAgent string
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *httpConfig) {
		c.client = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(c *httpConfig) {
		c.userAgent = ua
	}
}

// NewHTTP creates a gateway for the store at baseURL (for example
// "http://localhost:8000").
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewValidationError("base_url", baseURL, "must be an absolute URL")
	}

	cfg := &httpConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var topts []transport.Option
	if cfg.client != nil {
		topts = append(topts, transport.WithHTTPClient(cfg.client))
	}
	if cfg.userAgent != "" {
		topts = append(topts, transport.WithUserAgent(cfg.userAgent))
	}

	return &HTTP{
		base:      strings.TrimRight(u.String(), "/") + "/" + constants.VideosResource,
		transport: transport.New(topts...),
	}, nil
}

// List implements Gateway.
func (g *HTTP) List(ctx context.Context) ([]videos.Video, error) {
	resp, err := g.transport.Do(ctx, http.MethodGet, g.base, nil)
	if err != nil {
		return nil, annotate(err, OpList, "")
	}

	var list []videos.Video
	if err := transport.DecodeResponse(resp, &list); err != nil {
		return nil, annotate(err, OpList, "")
	}
	if list == nil {
		list = []videos.Video{}
	}

	logging.FromContext(ctx).Debug().Int("count", len(list)).Msg("Listed videos")
	return list, nil
}

// Create implements Gateway.
func (g *HTTP) Create(ctx context.Context, sourceURL string) (videos.Video, error) {
	resp, err := g.transport.Do(ctx, http.MethodPost, g.base, map[string]string{"url": sourceURL})
	if err != nil {
		return videos.Video{}, annotate(err, OpCreate, sourceURL)
	}

	var created videos.Video
	if err := transport.DecodeResponse(resp, &created); err != nil {
		return videos.Video{}, annotate(err, OpCreate, sourceURL)
	}
	if created.ID == "" {
		return videos.Video{}, errors.NewNetworkError(OpCreate, sourceURL, stderrors.New("store returned a record without id"))
	}

	logging.FromContext(ctx).Debug().Str("video_id", created.ID).Msg("Created video")
	return created, nil
}

// Delete implements Gateway.
func (g *HTTP) Delete(ctx context.Context, id string) error {
	resp, err := g.transport.Do(ctx, http.MethodDelete, g.base+"/"+url.PathEscape(id), nil)
	if err != nil {
		return annotate(err, OpDelete, id)
	}
	if err := transport.Discard(resp); err != nil {
		return annotate(err, OpDelete, id)
	}

	logging.FromContext(ctx).Debug().Str("video_id", id).Msg("Deleted video")
	return nil
}

// annotate fills in the operation and target of a RemoteError. Any other
// error, including a canceled context, is reported as a network failure.
func annotate(err error, op, id string) error {
	if re, ok := errors.AsRemote(err); ok {
		re.Op = op
		re.ID = id
		return re
	}
	return errors.NewNetworkError(op, id, err)
}
