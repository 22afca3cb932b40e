package middleware

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/helper"
	"EnvWatchAPI/internal/repository"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimitMiddleware limits requests per client IP. With Redis available the
// counters are shared across instances; without it each route falls back to an
// in-process token bucket.
type RateLimitMiddleware struct {
	repo *repository.RateLimitRepository
}

func NewRateLimitMiddleware(repo *repository.RateLimitRepository) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		repo: repo,
	}
}

func (m *RateLimitMiddleware) Limit(keyName string, limit int, window time.Duration) func(http.Handler) http.Handler {
	// The in-process limiter runs a cleanup goroutine, so it is only built
	// once the Redis path is actually unavailable.
	var (
		localOnce sync.Once
		local     *config.RateLimiter
	)
	fallback := func() *config.RateLimiter {
		localOnce.Do(func() {
			local = config.NewRateLimiter(limit, window)
		})
		return local
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := clientIP(r)

			allowed, ttl := m.allow(r, keyName, identifier, limit, window, fallback)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))

			if !allowed {
				w.Header().Set("X-RateLimit-Remaining", "0")
				if ttl > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(ttl.Seconds()))))
				}
				helper.WriteError(w, helper.NewTooManyRequestsError("Rate limit exceeded. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *RateLimitMiddleware) allow(r *http.Request, keyName, identifier string, limit int, window time.Duration, fallback func() *config.RateLimiter) (bool, time.Duration) {
	if m.repo != nil {
		key := fmt.Sprintf("ratelimit:%s:%s", keyName, identifier)
		allowed, ttl, err := m.repo.Allow(r.Context(), key, limit, window)
		if err == nil {
			return allowed, ttl
		}
		slog.Error("Redis rate limit check failed, falling back to local limiter", "error", err)
	}

	return fallback().Allow(identifier), window
}

// clientIP trusts RemoteAddr, which the router's RealIP middleware has already
// resolved from forwarding headers.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
