package readstore

import (
	"context"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation_mock.go -package=readstoremock

type ReservationViewQueries interface {
	GetReservationViewByID(ctx context.Context, db pgstore.DBTX, id uuid.UUID) (pgstore.ReservationViewRow, error)
	ListActiveReservationsByResourceDate(ctx context.Context, db pgstore.DBTX, arg pgstore.ListActiveReservationsByResourceDateParams) ([]pgstore.ReservationViewRow, error)
	ListReservationsByUserFirstPage(ctx context.Context, db pgstore.DBTX, arg pgstore.ListReservationsByUserFirstPageParams) ([]pgstore.ReservationViewRow, error)
	ListReservationsByUserKeyset(ctx context.Context, db pgstore.DBTX, arg pgstore.ListReservationsByUserKeysetParams) ([]pgstore.ReservationViewRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      pgstore.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db pgstore.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view, err := toReservationView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation row", err, infra.KindDBFailure)
	}
	return view, nil
}

// ListActiveByResourceDate returns the non-cancelled reservations of one resource on one day,
// ordered by start minute.
func (r *ReservationReadStore) ListActiveByResourceDate(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]*queries.ReservationView, error) {
	params := pgstore.ListActiveReservationsByResourceDateParams{
		ResourceID:  resourceID,
		BookingDate: pgconv.DateToPgtype(date),
	}

	rows, err := r.queries.ListActiveReservationsByResourceDate(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations of resource day", err)
	}

	return toReservationViews(rows)
}

func (r *ReservationReadStore) FindByUserIDFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := pgstore.ListReservationsByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	}

	rows, err := r.queries.ListReservationsByUserFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}

	return toReservationViews(rows)
}

func (r *ReservationReadStore) FindByUserIDKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := pgstore.ListReservationsByUserKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListReservationsByUserKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}

	return toReservationViews(rows)
}

func toReservationViews(rows []pgstore.ReservationViewRow) ([]*queries.ReservationView, error) {
	result := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		view, err := toReservationView(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation row", err, infra.KindDBFailure)
		}
		result = append(result, view)
	}
	return result, nil
}

func toReservationView(row pgstore.ReservationViewRow) (*queries.ReservationView, error) {
	price, err := pgconv.DecimalFromText(row.TotalPrice)
	if err != nil {
		return nil, err
	}
	date, err := pgconv.DateFromPgtype(row.BookingDate)
	if err != nil {
		return nil, err
	}
	return &queries.ReservationView{
		ID:           row.ID,
		ResourceID:   row.ResourceID,
		ResourceName: row.ResourceName,
		ResourceType: row.ResourceType,
		UserID:       row.UserID,
		Date:         date.Format(pgconv.DateLayout),
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		StartMinute:  int(row.StartMinute),
		EndMinute:    int(row.EndMinute),
		Duration:     int(row.Duration),
		Status:       row.Status,
		TotalPrice:   price,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
