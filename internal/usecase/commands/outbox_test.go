//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"
	sharedmock "court-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type relayFixture struct {
	relay     *commands.OutboxRelay
	outbox    *sharedmock.MockOutboxRepository
	publisher *sharedmock.MockEventPublisher
	now       time.Time
}

func newRelayFixture(t *testing.T, opts commands.RelayOptions) relayFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	outbox := sharedmock.NewMockOutboxRepository(ctrl)
	publisher := sharedmock.NewMockEventPublisher(ctrl)

	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error { return fn(ctx, tx) }).AnyTimes()
	tx.EXPECT().Outbox().Return(outbox).AnyTimes()

	now := time.Date(2030, 5, 16, 12, 0, 0, 0, time.UTC)
	return relayFixture{
		relay:     commands.NewOutboxRelay(uow, publisher, clock.NewMockClock(now), opts),
		outbox:    outbox,
		publisher: publisher,
		now:       now,
	}
}

func outboxEvent(attempts int32) shared.OutboxEvent {
	return shared.OutboxEvent{
		ID:       uuid.New(),
		Topic:    "reservation.created",
		EntityID: uuid.New(),
		Payload:  []byte(`{"event_type":"created"}`),
		Attempts: attempts,
	}
}

func TestOutboxRelay_DispatchPending(t *testing.T) {
	ctx := context.Background()

	t.Run("published events are marked sent", func(t *testing.T) {
		f := newRelayFixture(t, commands.RelayOptions{BatchSize: 10, MaxAttempts: 3})
		first, second := outboxEvent(0), outboxEvent(1)

		f.outbox.EXPECT().ClaimDue(gomock.Any(), f.now, int32(10)).Return([]shared.OutboxEvent{first, second}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), first.Topic, first.EntityID.String(), first.Payload).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), second.Topic, second.EntityID.String(), second.Payload).Return(nil)
		f.outbox.EXPECT().MarkSent(gomock.Any(), first.ID, int32(1), f.now).Return(nil)
		f.outbox.EXPECT().MarkSent(gomock.Any(), second.ID, int32(2), f.now).Return(nil)

		sent, err := f.relay.DispatchPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("broker failure reschedules with backoff", func(t *testing.T) {
		f := newRelayFixture(t, commands.RelayOptions{BatchSize: 10, MaxAttempts: 5})
		ev := outboxEvent(2)

		f.outbox.EXPECT().ClaimDue(gomock.Any(), f.now, int32(10)).Return([]shared.OutboxEvent{ev}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), ev.Topic, gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		f.outbox.EXPECT().Reschedule(gomock.Any(), ev.ID, int32(3), "broker down", f.now.Add(4*time.Second), false).Return(nil)

		sent, err := f.relay.DispatchPending(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("last attempt marks the event failed", func(t *testing.T) {
		f := newRelayFixture(t, commands.RelayOptions{BatchSize: 10, MaxAttempts: 3})
		ev := outboxEvent(2)

		f.outbox.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), gomock.Any()).Return([]shared.OutboxEvent{ev}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		f.outbox.EXPECT().Reschedule(gomock.Any(), ev.ID, int32(3), gomock.Any(), gomock.Any(), true).Return(nil)

		_, err := f.relay.DispatchPending(ctx)
		require.NoError(t, err)
	})

	t.Run("publish runs under its own timeout", func(t *testing.T) {
		f := newRelayFixture(t, commands.RelayOptions{PublishTimeout: 50 * time.Millisecond})
		ev := outboxEvent(0)

		f.outbox.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), int32(50)).Return([]shared.OutboxEvent{ev}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ string, _ []byte) error {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				return nil
			})
		f.outbox.EXPECT().MarkSent(gomock.Any(), ev.ID, int32(1), gomock.Any()).Return(nil)

		sent, err := f.relay.DispatchPending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("claim failure is returned", func(t *testing.T) {
		f := newRelayFixture(t, commands.RelayOptions{})
		f.outbox.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		sent, err := f.relay.DispatchPending(ctx)
		require.Error(t, err)
		assert.Zero(t, sent)
	})
}

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		attempts int32
		want     time.Duration
	}{
		{attempts: 0, want: time.Second},
		{attempts: 1, want: time.Second},
		{attempts: 2, want: 2 * time.Second},
		{attempts: 5, want: 16 * time.Second},
		{attempts: 9, want: 256 * time.Second},
		{attempts: 10, want: 5 * time.Minute},
		{attempts: 64, want: 5 * time.Minute},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, commands.RetryDelay(tc.attempts), "attempts=%d", tc.attempts)
	}
}
