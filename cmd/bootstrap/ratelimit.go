package bootstrap

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/ratelimit"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		NewRateLimiter,
	),
)

// NewRateLimiter shares quotas through Redis when an address is configured and keeps them
// in process otherwise.
func NewRateLimiter(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.RedisAddr == "" {
		logger.Info("rate limiter uses local buckets", "window", rl.Window, "max", rl.MaxRequests)
		return ratelimit.NewLocalLimiter(rl.Window, rl.MaxRequests)
	}

	client := ratelimit.NewRedisClient(rl.RedisAddr, rl.RedisPassword, rl.RedisDB)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed, requests pass until it recovers", "addr", rl.RedisAddr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("rate limiter uses redis", "addr", rl.RedisAddr, "window", rl.Window, "max", rl.MaxRequests)
	return ratelimit.NewRedisLimiter(client, clk, rl.Window, rl.MaxRequests)
}
