package repository

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=idempotency.go -destination=../../../tests/mock/repository/idempotency_mock.go -package=repositorymock

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db pgstore.DBTX, arg pgstore.TryInsertIdempotencyKeyParams) (int64, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db pgstore.DBTX, arg pgstore.ClaimExpiredIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db pgstore.DBTX, arg pgstore.CompleteIdempotencyKeyParams) error
	ReleaseIdempotencyKey(ctx context.Context, db pgstore.DBTX, key, userID uuid.UUID) error
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      pgstore.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db pgstore.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

// TryInsert reports whether this call created the key.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := pgstore.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return n > 0, nil
}

// ClaimExpired takes over a key whose previous owner expired. It reports whether the claim won.
func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	params := pgstore.ClaimExpiredIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	n, err := r.queries.ClaimExpiredIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return n > 0, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, userID, reservationID uuid.UUID) error {
	params := pgstore.CompleteIdempotencyKeyParams{
		Key:                 key,
		UserID:              userID,
		ResultReservationID: reservationID,
	}

	if err := r.queries.CompleteIdempotencyKey(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	if err := r.queries.ReleaseIdempotencyKey(ctx, r.db, key, userID); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
