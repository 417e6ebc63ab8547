package middleware

import (
	"fmt"
	"net"
	"net/http"
	"shop_admin_server/lib"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getClientIP extracts the client IP; chi's RealIP has already applied proxy headers
func (mw *Middleware) getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitMiddleware counts requests per client IP and route within a fixed
// window. Cache failures let the request through.
func (mw *Middleware) RateLimitMiddleware(limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := mw.getClientIP(r)
			endpoint := strings.TrimSuffix(r.URL.Path, "/")

			count, err := mw.limiter.IncrementRateLimit(r.Context(), clientIP, endpoint, window)
			if err != nil {
				// Cache error - log and allow request (fail open)
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
				)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(0, limit-count)
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("endpoint", endpoint),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				lib.Message(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
