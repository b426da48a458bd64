package pgstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createOutboxEvent = `-- name: CreateOutboxEvent :exec
INSERT INTO outbox_events (topic, entity_id, payload, status, run_at)
VALUES ($1, $2, $3, 'queued', $4)
`

type CreateOutboxEventParams struct {
	Topic    string
	EntityID uuid.UUID
	Payload  []byte
	RunAt    pgtype.Timestamptz
}

func (q *Queries) CreateOutboxEvent(ctx context.Context, db DBTX, arg CreateOutboxEventParams) error {
	_, err := db.Exec(ctx, createOutboxEvent, arg.Topic, arg.EntityID, arg.Payload, arg.RunAt)
	return err
}

const claimDueOutboxEvents = `-- name: ClaimDueOutboxEvents :many
SELECT id, topic, entity_id, payload, status, attempts, last_error, run_at, created_at, updated_at
FROM outbox_events
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED
`

type ClaimDueOutboxEventsParams struct {
	Now   pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ClaimDueOutboxEvents(ctx context.Context, db DBTX, arg ClaimDueOutboxEventsParams) ([]OutboxEvent, error) {
	rows, err := db.Query(ctx, claimDueOutboxEvents, arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.ID,
			&i.Topic,
			&i.EntityID,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.RunAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOutboxEvent = `-- name: UpdateOutboxEvent :exec
UPDATE outbox_events
SET status = $2, attempts = $3, last_error = $4, run_at = $5, updated_at = now()
WHERE id = $1
`

type UpdateOutboxEventParams struct {
	ID        uuid.UUID
	Status    string
	Attempts  int32
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
}

func (q *Queries) UpdateOutboxEvent(ctx context.Context, db DBTX, arg UpdateOutboxEventParams) error {
	_, err := db.Exec(ctx, updateOutboxEvent, arg.ID, arg.Status, arg.Attempts, arg.LastError, arg.RunAt)
	return err
}
