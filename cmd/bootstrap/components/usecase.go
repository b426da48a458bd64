package components

import (
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewDefaultPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(clk clock.Clock, calc reservation.PriceCalculator, cfg config.Config) *reservation.Factory {
		return reservation.NewFactory(clk, calc, cfg.Booking.Location(), reservation.Status(cfg.Booking.InitialStatus))
	},
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(store queries.ResourceStore, cfg config.Config) queries.ResourceQueries {
			return queries.NewResourceQueries(store, cfg.Booking.StoreTimeout)
		},
		func(store queries.ReservationStore, cfg config.Config) queries.ReservationQueries {
			return queries.NewReservationQueries(store, cfg.Booking.StoreTimeout)
		},
		func(
			resources queries.ResourceStore,
			reservations queries.ReservationStore,
			clk clock.Clock,
			cfg config.Config,
		) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(resources, reservations, clk, cfg.Booking.Location(), cfg.Booking.StoreTimeout)
		},
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			factory *reservation.Factory,
			reservationQueries queries.ReservationQueries,
			clk clock.Clock,
			cfg config.Config,
		) commands.ReservationCommands {
			return commands.NewReservationUseCase(uow, factory, reservationQueries, clk, commands.Options{
				StoreTimeout:   cfg.Booking.StoreTimeout,
				IdempotencyTTL: cfg.Booking.IdempotencyTTL,
			})
		},
		func(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, cfg config.Config) *commands.OutboxRelay {
			return commands.NewOutboxRelay(uow, publisher, clk, commands.RelayOptions{
				BatchSize:      cfg.Events.RelayBatchSize,
				MaxAttempts:    cfg.Events.MaxAttempts,
				PublishTimeout: cfg.Events.PublishTimeout,
			})
		},
	),
)
