package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	now := time.Now()
	l := NewIPRateLimiter(2, 60)
	l.now = func() time.Time { return now }

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	status := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, status("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, status("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, status("10.0.0.1:1111"))

	// Other clients are unaffected.
	assert.Equal(t, http.StatusOK, status("10.0.0.2:2222"))

	// A new window clears the count.
	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, status("10.0.0.1:1111"))
}

func TestRateLimiterUsesForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", clientIP(req))
}

func TestMetricsAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	status := func(token, header string) int {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		MetricsAuth(token)(next).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, status("", ""))
	assert.Equal(t, http.StatusForbidden, status("secret", ""))
	assert.Equal(t, http.StatusForbidden, status("secret", "Bearer wrong"))
	assert.Equal(t, http.StatusOK, status("secret", "Bearer secret"))
}
