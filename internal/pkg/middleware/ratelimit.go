package middleware

import (
	"net/http"
	"strconv"
	"time"

	"sofadeal/internal/domain"
	"sofadeal/internal/pkg/cache"
	"sofadeal/internal/pkg/logger"
)

// RateLimiter allows limit requests per client IP in each window.
// The counter lives in the cache; when the cache fails, requests are let through.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + ClientIP(r)
			ctx := r.Context()

			// The first request of a window creates the counter and its expiry.
			count, err := client.IncrWithTTL(ctx, key, window)
			if err != nil {
				log.Warn("Rate limiter unavailable, request allowed.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count > limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeJSON(w, http.StatusTooManyRequests, domain.ErrorResponse{
					Code:     http.StatusTooManyRequests,
					Category: "RATE_LIMITED",
					Message:  "rate limit exceeded",
				})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count))
			next.ServeHTTP(w, r)
		})
	}
}
