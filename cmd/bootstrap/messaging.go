package bootstrap

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	publisher, err := messaging.NewPublisher(cfg.Events)
	if err != nil {
		return nil, err
	}
	logger.Info("event publisher initialized", "driver", cfg.Events.Driver)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
