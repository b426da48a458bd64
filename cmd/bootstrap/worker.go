package bootstrap

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		startOutboxRelay,
	),
)

func startOutboxRelay(lc fx.Lifecycle, relay *commands.OutboxRelay, cfg config.Config, logger *slog.Logger) {
	interval := cfg.Events.RelayInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				runRelay(ctx, relay, interval, logger)
			}()
			logger.Info("outbox relay started", "interval", interval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				logger.Info("outbox relay stopped")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runRelay(ctx context.Context, relay *commands.OutboxRelay, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := relay.DispatchPending(ctx)
			if err != nil && ctx.Err() == nil {
				logger.Error("outbox dispatch failed", "error", err)
				continue
			}
			if sent > 0 {
				logger.Debug("outbox events published", "count", sent)
			}
		}
	}
}
