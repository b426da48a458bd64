// Package ratelimit caps how often one caller may hit a write endpoint.
package ratelimit

import (
	"context"
	"time"
)

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	// Allow counts one request for key and reports whether it fits the quota.
	Allow(ctx context.Context, group, key string) (Decision, error)
}
