package commands

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase/shared"
)

const (
	outboxBaseDelay = time.Second
	outboxMaxDelay  = 5 * time.Minute
)

type RelayOptions struct {
	BatchSize      int32
	MaxAttempts    int32
	PublishTimeout time.Duration
}

// OutboxRelay moves committed events from the outbox table to the broker.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
	opts      RelayOptions
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, opts RelayOptions) *OutboxRelay {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 8
	}
	return &OutboxRelay{uow: uow, publisher: publisher, clock: clk, opts: opts}
}

// DispatchPending publishes one batch of due events and returns how many were delivered.
// Relays on other instances skip the rows this batch holds.
func (r *OutboxRelay) DispatchPending(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := r.clock.Now()
		events, err := tx.Outbox().ClaimDue(ctx, now, r.opts.BatchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			attempts := ev.Attempts + 1
			if pubErr := r.publish(ctx, ev); pubErr != nil {
				failed := attempts >= r.opts.MaxAttempts
				runAt := now.Add(RetryDelay(attempts))
				slog.Warn("outbox publish failed",
					"event_id", ev.ID,
					"topic", ev.Topic,
					"attempt", attempts,
					"gave_up", failed,
					"error", pubErr.Error())
				if err := tx.Outbox().Reschedule(ctx, ev.ID, attempts, pubErr.Error(), runAt, failed); err != nil {
					return err
				}
				continue
			}

			if err := tx.Outbox().MarkSent(ctx, ev.ID, attempts, now); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}

func (r *OutboxRelay) publish(ctx context.Context, ev shared.OutboxEvent) error {
	if r.opts.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.PublishTimeout)
		defer cancel()
	}
	return r.publisher.Publish(ctx, ev.Topic, ev.EntityID.String(), ev.Payload)
}

// RetryDelay doubles from one second per attempt and is capped at five minutes.
func RetryDelay(attempts int32) time.Duration {
	if attempts <= 1 {
		return outboxBaseDelay
	}
	if attempts > 20 {
		return outboxMaxDelay
	}
	d := outboxBaseDelay << (attempts - 1)
	if d > outboxMaxDelay {
		return outboxMaxDelay
	}
	return d
}
