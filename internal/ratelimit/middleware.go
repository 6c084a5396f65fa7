package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/config"
	"github.com/dadihq/dadi-gateway/internal/httputil"
)

const (
	headerRateLimitRequests  = "X-RateLimit-Limit-Requests"
	headerRateLimitRemaining = "X-RateLimit-Remaining-Requests"
	headerRateLimitReset     = "X-RateLimit-Reset-Requests"
	headerRetryAfter         = "Retry-After"
)

// Middleware returns chi middleware that enforces a per-caller request
// limit, bucketed by the authenticated email. It must run after the auth
// middleware; requests without an identity pass through untouched.
func Middleware(limiter *Limiter, cfg func() config.RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rl := cfg()
			if !rl.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			reqID := w.Header().Get("X-Request-ID")
			window := rl.Window
			if window <= 0 {
				window = time.Minute
			}

			result, _ := limiter.Check(r.Context(), "email:"+id.Email, int64(rl.RequestsPerWindow), window)

			w.Header().Set(headerRateLimitRequests, strconv.Itoa(rl.RequestsPerWindow))
			w.Header().Set(headerRateLimitRemaining, strconv.FormatInt(result.Remaining, 10))
			w.Header().Set(headerRateLimitReset, result.ResetAt.Format(time.RFC3339))

			if !result.Allowed {
				slog.Warn("rate limit exceeded",
					"request_id", reqID,
					"email", id.Email,
					"limit", rl.RequestsPerWindow,
				)
				w.Header().Set(headerRetryAfter, strconv.Itoa(int(result.RetryAfter.Seconds())))
				httputil.WriteRateLimited(w, reqID, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
