package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/gateway"
	"github.com/agentstation/tourvault/pkg/videos"
)

func newGateway(t *testing.T, h http.Handler) *gateway.HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := gateway.NewHTTP(srv.URL + "/")
	require.NoError(t, err)
	return g
}

func TestNewHTTP_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "localhost:8000", "/videos"} {
		_, err := gateway.NewHTTP(base)
		assert.True(t, errors.IsValidationError(err), "base %q", base)
	}
}

func TestHTTP_List(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/videos", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id":"b","title":"Dogs","description":"","thumbnail":"","url":"https://youtu.be/b"},
			{"id":"a","title":"Cats","description":"","thumbnail":"","url":"https://youtu.be/a"}
		]`)
	}))

	list, err := g.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "store order is kept")
	assert.Equal(t, "https://youtu.be/a", list[1].URL)
}

func TestHTTP_ListNullBody(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	}))

	list, err := g.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestHTTP_Create(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(videos.Video{ID: "abc", Title: "Cats", URL: body["url"]})
	}))

	v, err := g.Create(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, videos.Video{ID: "abc", Title: "Cats", URL: "https://youtu.be/abc"}, v)
}

func TestHTTP_CreateRejected(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Video already exists"}`)
	}))

	_, err := g.Create(context.Background(), "https://youtu.be/abc")
	re, ok := errors.AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindRejected, re.Kind)
	assert.Equal(t, "Video already exists", re.Detail)
	assert.Equal(t, gateway.OpCreate, re.Op)
	assert.Equal(t, "https://youtu.be/abc", re.ID)
}

func TestHTTP_CreateWithoutID(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"title":"no id"}`)
	}))

	_, err := g.Create(context.Background(), "https://youtu.be/abc")
	assert.True(t, errors.IsNetwork(err))
}

func TestHTTP_DeleteEscapesID(t *testing.T) {
	var path atomic.Value
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path.Store(r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"message":"deleted"}`)
	}))

	require.NoError(t, g.Delete(context.Background(), "a/b c"))
	assert.Equal(t, "/videos/a%2Fb%20c", path.Load())
}

func TestHTTP_DeleteNotFound(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Video missing-id not found"}`)
	}))

	err := g.Delete(context.Background(), "missing-id")
	assert.True(t, errors.IsNotFound(err))
	re, _ := errors.AsRemote(err)
	assert.Equal(t, "missing-id", re.ID)
}

func TestHTTP_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	g, err := gateway.NewHTTP(srv.URL)
	require.NoError(t, err)

	_, err = g.List(context.Background())
	assert.True(t, errors.IsNetwork(err))
	re, _ := errors.AsRemote(err)
	assert.Equal(t, gateway.OpList, re.Op)
}

func TestHTTP_CanceledContext(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Delete(ctx, "a")
	assert.True(t, errors.IsNetwork(err))
	assert.ErrorIs(t, err, context.Canceled)
}
