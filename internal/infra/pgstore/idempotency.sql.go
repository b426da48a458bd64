package pgstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `-- name: TryInsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.UserID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, user_id, endpoint, request_hash, status, result_reservation_id, expires_at, created_at, updated_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) (IdempotencyKey, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, key, userID)
	var i IdempotencyKey
	err := row.Scan(
		&i.Key,
		&i.UserID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultReservationID,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const completeIdempotencyKey = `-- name: CompleteIdempotencyKey :exec
UPDATE idempotency_keys
SET status = 'completed', result_reservation_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2
`

type CompleteIdempotencyKeyParams struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	ResultReservationID uuid.UUID
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, completeIdempotencyKey, arg.Key, arg.UserID, arg.ResultReservationID)
	return err
}

const releaseIdempotencyKey = `-- name: ReleaseIdempotencyKey :exec
DELETE FROM idempotency_keys
WHERE key = $1 AND user_id = $2 AND status = 'processing'
`

// ReleaseIdempotencyKey frees a key whose request failed so the client may retry with it.
func (q *Queries) ReleaseIdempotencyKey(ctx context.Context, db DBTX, key, userID uuid.UUID) error {
	_, err := db.Exec(ctx, releaseIdempotencyKey, key, userID)
	return err
}

const claimExpiredIdempotencyKey = `-- name: ClaimExpiredIdempotencyKey :execrows
UPDATE idempotency_keys
SET status = 'processing', request_hash = $3, result_reservation_id = NULL,
    expires_at = $4, updated_at = now()
WHERE key = $1 AND user_id = $2 AND expires_at < now()
`

type ClaimExpiredIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, claimExpiredIdempotencyKey, arg.Key, arg.UserID, arg.RequestHash, arg.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
