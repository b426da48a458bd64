package middleware

import (
	"log/slog"
	"net/http"

	"court-booking/internal/handler/httperr"
	"court-booking/internal/infra/ratelimit"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

// RateLimit counts requests per caller inside group. The caller is X-User-ID when present,
// otherwise the client IP. A limiter failure lets the request through.
func RateLimit(limiter ratelimit.Limiter, group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(headerUserID)
		if key == "" {
			key = c.ClientIP()
		}

		decision, err := limiter.Allow(c.Request.Context(), group, key)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request",
				"group", group, "key", key, "request_id", GetRequestID(c), "error", err)
			c.Next()
			return
		}

		if !decision.Allowed {
			httperr.AbortRetryable(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", decision.RetryAfter)
			return
		}
		c.Next()
	}
}
