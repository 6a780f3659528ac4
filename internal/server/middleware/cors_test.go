package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalhostOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:1", "http://localhost:2"}, LocalhostOrigins(1, 2))
	assert.Nil(t, LocalhostOrigins(3, 2))
	assert.Len(t, LocalhostOrigins(5173, 6200), 6200-5173+1)
}

func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()

	assert.False(t, config.AllowAll)
	assert.True(t, config.AllowCredentials)
	assert.True(t, isOriginAllowed("http://localhost:3000", config.AllowedOrigins))
	assert.True(t, isOriginAllowed("http://localhost:5173", config.AllowedOrigins))
	assert.True(t, isOriginAllowed("http://localhost:6200", config.AllowedOrigins))
	assert.False(t, isOriginAllowed("http://localhost:6201", config.AllowedOrigins))
	assert.False(t, isOriginAllowed("https://evil.example", config.AllowedOrigins))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		config      CORSConfig
		method      string
		origin      string
		wantOrigin  string
		wantCreds   string
		wantStatus  int
		wantHandled bool
	}{
		{
			name:        "allow all",
			config:      CORSConfig{AllowAll: true, AllowedMethods: []string{"GET"}},
			method:      http.MethodGet,
			origin:      "https://example.com",
			wantOrigin:  "*",
			wantStatus:  http.StatusNoContent,
			wantHandled: true,
		},
		{
			name:        "listed origin echoed with credentials",
			config:      DefaultCORSConfig(),
			method:      http.MethodGet,
			origin:      "http://localhost:5173",
			wantOrigin:  "http://localhost:5173",
			wantCreds:   "true",
			wantStatus:  http.StatusNoContent,
			wantHandled: true,
		},
		{
			name:        "unlisted origin gets no allow header",
			config:      DefaultCORSConfig(),
			method:      http.MethodGet,
			origin:      "https://evil.example",
			wantStatus:  http.StatusNoContent,
			wantHandled: true,
		},
		{
			name:       "preflight short-circuits",
			config:     DefaultCORSConfig(),
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
			wantCreds:  "true",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled := false
			handler := CORS(tt.config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handled = true
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(tt.method, "/videos", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantHandled, handled)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}
