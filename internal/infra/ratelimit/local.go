package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter keeps one token bucket per key in memory. It is the fallback when no Redis address
// is configured, so quotas are per instance.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func NewLocalLimiter(window time.Duration, maxQuota int) *LocalLimiter {
	l := &LocalLimiter{limiters: make(map[string]*rate.Limiter), burst: maxQuota}
	if maxQuota > 0 {
		l.every = rate.Every(window / time.Duration(maxQuota))
	}
	return l
}

func (l *LocalLimiter) Allow(_ context.Context, group, key string) (Decision, error) {
	if l.burst <= 0 {
		return Decision{Allowed: true}, nil
	}

	l.mu.Lock()
	id := group + ":" + key
	limiter, ok := l.limiters[id]
	if !ok {
		limiter = rate.NewLimiter(l.every, l.burst)
		l.limiters[id] = limiter
	}
	l.mu.Unlock()

	r := limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}
	return Decision{Allowed: true}, nil
}
