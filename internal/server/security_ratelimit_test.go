package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects once bucket is empty", func(t *testing.T) {
		// Zero refill rate so the burst is all the bucket ever holds.
		limiter := rate.NewLimiter(0, 3)
		handler := RateLimitMiddleware(limiter)(okHandler())

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/garden", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/garden", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("public paths stay exempt", func(t *testing.T) {
		limiter := rate.NewLimiter(0, 0)
		handler := RateLimitMiddleware(limiter)(okHandler())

		for _, path := range PublicPaths {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		}
	})
}
