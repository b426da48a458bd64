package repository

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=outbox.go -destination=../../../tests/mock/repository/outbox_mock.go -package=repositorymock

const (
	OutboxStatusQueued = "queued"
	OutboxStatusSent   = "sent"
	OutboxStatusFailed = "failed"
)

type OutboxWriteQueries interface {
	CreateOutboxEvent(ctx context.Context, db pgstore.DBTX, arg pgstore.CreateOutboxEventParams) error
	ClaimDueOutboxEvents(ctx context.Context, db pgstore.DBTX, arg pgstore.ClaimDueOutboxEventsParams) ([]pgstore.OutboxEvent, error)
	UpdateOutboxEvent(ctx context.Context, db pgstore.DBTX, arg pgstore.UpdateOutboxEventParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      pgstore.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db pgstore.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, topic string, entityID uuid.UUID, payload []byte, runAt time.Time) error {
	params := pgstore.CreateOutboxEventParams{
		Topic:    topic,
		EntityID: entityID,
		Payload:  payload,
		RunAt:    pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.CreateOutboxEvent(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create outbox event", err)
	}
	return nil
}

// ClaimDue locks up to limit due events; rows locked by another relay are skipped.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]shared.OutboxEvent, error) {
	params := pgstore.ClaimDueOutboxEventsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	}

	rows, err := r.queries.ClaimDueOutboxEvents(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due outbox events", err)
	}

	events := make([]shared.OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = shared.OutboxEvent{
			ID:        row.ID,
			Topic:     row.Topic,
			EntityID:  row.EntityID,
			Payload:   row.Payload,
			Attempts:  row.Attempts,
			CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, attempts int32, now time.Time) error {
	return r.update(ctx, id, OutboxStatusSent, attempts, nil, now)
}

// Reschedule records a failed attempt; the event is retried at runAt unless failed is set.
func (r *OutboxRepository) Reschedule(ctx context.Context, id uuid.UUID, attempts int32, lastError string, runAt time.Time, failed bool) error {
	status := OutboxStatusQueued
	if failed {
		status = OutboxStatusFailed
	}
	return r.update(ctx, id, status, attempts, &lastError, runAt)
}

func (r *OutboxRepository) update(ctx context.Context, id uuid.UUID, status string, attempts int32, lastError *string, runAt time.Time) error {
	params := pgstore.UpdateOutboxEventParams{
		ID:        id,
		Status:    status,
		Attempts:  attempts,
		LastError: pgconv.StringPtrToPgtype(lastError),
		RunAt:     pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.UpdateOutboxEvent(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to update outbox event", err)
	}
	return nil
}
