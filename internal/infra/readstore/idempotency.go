package readstore

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db pgstore.DBTX, key, userID uuid.UUID) (pgstore.IdempotencyKey, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	db      pgstore.DBTX
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, db pgstore.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		db:      db,
	}
}

// Get returns the record even when it has expired; callers decide whether to reclaim it.
func (r *IdempotencyReadStore) Get(ctx context.Context, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, key, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
