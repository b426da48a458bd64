package queries

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*ReservationPage, error)
	ListByResourceDate(ctx context.Context, resourceID uuid.UUID, date string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store   ReservationStore
	timeout time.Duration
}

func NewReservationQueries(store ReservationStore, timeout time.Duration) ReservationQueries {
	return &reservationQueriesImpl{store: store, timeout: timeout}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrReservationNotFound)
	}
	return view, nil
}

// ListByUser pages newest first. A full page carries a cursor for the next one.
func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) (*ReservationPage, error) {
	limit = ValidateLimit(limit)
	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	var (
		rows []*ReservationView
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.store.FindByUserIDFirstPage(ctx, userID, int32(limit)) // #nosec G115 -- capped by MaxListLimit
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, decodeErr
		}
		rows, err = q.store.FindByUserIDKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit)) // #nosec G115 -- capped by MaxListLimit
	}
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrReservationNotFound)
	}

	page := &ReservationPage{Items: rows}
	if len(rows) == limit {
		last := rows[len(rows)-1]
		page.Next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return page, nil
}

func (q *reservationQueriesImpl) ListByResourceDate(ctx context.Context, resourceID uuid.UUID, date string) ([]*ReservationView, error) {
	day, err := reservation.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	rows, err := q.store.ListActiveByResourceDate(ctx, resourceID, day.Time())
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrReservationNotFound)
	}
	return rows, nil
}
