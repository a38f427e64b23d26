package mw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"

	"github.com/MrSnakeDoc/awareness/internal/utils"
)

type RateLimitConfig struct {
	PerSecond  int           // sustained requests per second per client
	IdleTTL    time.Duration // forget a client after this long
	TrustProxy bool          // resolve IP from proxy headers when true
}

// RateLimit throttles each client IP. A non-positive rate disables it.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.PerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}

	lmt := tollbooth.NewLimiter(float64(cfg.PerSecond), &limiter.ExpirableOptions{
		DefaultExpirationTTL: cfg.IdleTTL,
	})
	limitStr := strconv.Itoa(cfg.PerSecond)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.ClientIP(r, cfg.TrustProxy)

			w.Header().Set("X-RateLimit-Limit", limitStr)
			if httpErr := tollbooth.LimitByKeys(lmt, []string{key}); httpErr != nil {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(httpErr.StatusCode), httpErr.StatusCode)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
