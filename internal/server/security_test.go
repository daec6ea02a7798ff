package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	handler := AuthMiddleware(apiKey)(okHandler())

	tests := []struct {
		name       string
		key        string
		path       string
		wantStatus int
	}{
		{"valid key", apiKey, "/api/v1/garden", http.StatusOK},
		{"invalid key", "wrong-key", "/api/v1/garden", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/garden", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"readyz is public", "", "/readyz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	handler := RequestSizeLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, readErr = r.Body.Read(buf)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/garden/plant", strings.NewReader("tiny"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized body errors on read", func(t *testing.T) {
		body := strings.Repeat("x", 64)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/garden/plant", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Error(t, readErr)
		assert.Contains(t, readErr.Error(), "request body too large")
	})
}
