package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/queries/ports_mock.go -package=queriesmock

type ResourceStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context) ([]*ResourceView, error)
}

type ReservationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListActiveByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*ReservationView, error)
	FindByUserIDFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindByUserIDKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationView, error)
}
