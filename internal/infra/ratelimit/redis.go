package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"court-booking/internal/pkg/clock"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every instance. The counter key is
// GROUP:key:windowID and lives one second longer than its window.
type RedisLimiter struct {
	client   redis.UniversalClient
	clock    clock.Clock
	window   time.Duration
	maxQuota int
}

func NewRedisLimiter(client redis.UniversalClient, clk clock.Clock, window time.Duration, maxQuota int) *RedisLimiter {
	if window < time.Second {
		window = time.Minute
	}
	return &RedisLimiter{client: client, clock: clk, window: window, maxQuota: maxQuota}
}

func (l *RedisLimiter) Allow(ctx context.Context, group, key string) (Decision, error) {
	if l.maxQuota <= 0 {
		return Decision{Allowed: true}, nil
	}

	now := l.clock.Now().UTC()
	windowSec := int64(l.window / time.Second)
	windowID := now.Unix() / windowSec
	redisKey := fmt.Sprintf("%s:%s:%d", strings.ToUpper(group), strings.ToLower(key), windowID)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window+time.Second)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit counter %s: %w", redisKey, err)
	}

	if incr.Val() > int64(l.maxQuota) {
		nextWindowStart := (windowID + 1) * windowSec
		retryAfter := time.Duration(nextWindowStart-now.Unix()) * time.Second
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}
	return Decision{Allowed: true}, nil
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
