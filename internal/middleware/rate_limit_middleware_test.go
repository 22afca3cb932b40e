package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitFallsBackToLocalLimiter(t *testing.T) {
	m := NewRateLimitMiddleware(nil)

	handler := m.Limit("test", 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("198.51.100.20:1234"))
	assert.Equal(t, http.StatusOK, do("198.51.100.20:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("198.51.100.20:1234"))

	// other clients are unaffected
	assert.Equal(t, http.StatusOK, do("203.0.113.7:1234"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.20:1234"
	assert.Equal(t, "198.51.100.20", clientIP(req))

	req.RemoteAddr = "198.51.100.20"
	assert.Equal(t, "198.51.100.20", clientIP(req))
}
