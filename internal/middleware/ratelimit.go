// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/sitekit/internal/cache"
	"github.com/olegiv/sitekit/internal/metrics"
	"github.com/olegiv/sitekit/internal/util"
)

// RateLimitConfig holds configuration for the fixed-window API limiter.
type RateLimitConfig struct {
	// Max is the number of requests allowed per client per window.
	Max int
	// Window is the length of one counting window.
	Window time.Duration
	// KeyPrefix namespaces counter keys (default: "ratelimit:").
	KeyPrefix string
	// Now overrides the clock used for header computation, for tests.
	Now func() time.Time
}

// RateLimit throttles requests per client address using counter. Each
// response carries X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset. Counter errors let the request through.
func RateLimit(counter cache.Counter, cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Max <= 0 {
		cfg.Max = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ratelimit:"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	limit := strconv.Itoa(cfg.Max)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := util.ClientIP(r)

			count, resetAt, err := counter.Incr(r.Context(), cfg.KeyPrefix+ip, cfg.Window)
			if err != nil {
				slog.WarnContext(r.Context(), "rate limit counter failed, allowing request", "error", err, "ip", ip)
				next.ServeHTTP(w, r)
				return
			}

			remaining := max(int64(cfg.Max)-count, 0)
			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if count > int64(cfg.Max) {
				retryAfter := int(math.Ceil(resetAt.Sub(cfg.Now()).Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
				slog.WarnContext(r.Context(), "api rate limit exceeded", "ip", ip, "count", count)
				metrics.RecordRateLimited("api")
				WriteAPIError(w, http.StatusTooManyRequests, CodeRateLimited,
					"Too many requests from this IP, please try again later", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
