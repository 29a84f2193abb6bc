package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"storefront/pkg/ratelimit"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit rejects with 429 once a caller exceeds max hits on a route
// within the window. Counters are keyed by (route, client IP) and live in
// the injected store.
func RateLimit(store ratelimit.CounterStore, max int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			key := fmt.Sprintf("ratelimit:%s:%s", r.URL.Path, ip)

			count, err := store.Incr(r.Context(), key, window)
			if err != nil {
				// A broken counter store must not take the API down
				logger.Error("Rate limit store failure",
					zap.Error(err),
					zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(max) {
				logger.Warn("Rate limit exceeded",
					zap.String("path", r.URL.Path),
					zap.String("ip", ip),
					zap.Int64("count", count))
				utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
