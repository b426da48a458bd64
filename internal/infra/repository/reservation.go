package repository

import (
	"context"
	"fmt"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/infra/repository/converter"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation_mock.go -package=repositorymock

type ReservationWriteQueries interface {
	LockResourceDay(ctx context.Context, db pgstore.DBTX, key string) error
	ListOverlappingReservations(ctx context.Context, db pgstore.DBTX, arg pgstore.ListOverlappingReservationsParams) ([]pgstore.ListOverlappingReservationsRow, error)
	CreateReservation(ctx context.Context, db pgstore.DBTX, arg pgstore.CreateReservationParams) (uuid.UUID, error)
	GetReservationForUpdate(ctx context.Context, db pgstore.DBTX, id uuid.UUID) (pgstore.Reservation, error)
	CancelReservation(ctx context.Context, db pgstore.DBTX, arg pgstore.CancelReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      pgstore.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db pgstore.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// LockDay takes the transaction-scoped advisory lock for one resource and day. Writers of other
// days or resources are not blocked.
func (r *ReservationRepository) LockDay(ctx context.Context, resourceID uuid.UUID, date reservation.Date) error {
	if err := r.queries.LockResourceDay(ctx, r.db, DayLockKey(resourceID, date)); err != nil {
		return infra.WrapRepoErr("failed to lock resource day", err)
	}
	return nil
}

func DayLockKey(resourceID uuid.UUID, date reservation.Date) string {
	return fmt.Sprintf("reservation:%s:%s", resourceID, date)
}

// FindOverlapping returns the ids of active reservations whose interval intersects slot, locking them.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, resourceID uuid.UUID, date reservation.Date, slot schedule.Slot) ([]uuid.UUID, error) {
	params := pgstore.ListOverlappingReservationsParams{
		ResourceID:  resourceID,
		BookingDate: pgconv.DateToPgtype(date.Time()),
		StartMinute: int32(slot.Start), // #nosec G115 -- bounded by the booking window
		EndMinute:   int32(slot.End),   // #nosec G115 -- bounded by the booking window
	}

	rows, err := r.queries.ListOverlappingReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check overlapping reservations", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// Create inserts the reservation. Both the exclusion constraint and the active-start unique index
// surface as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, r.db, params)
	if err != nil {
		kind := infra.Classify(err)
		if kind == infra.KindDuplicateKey {
			kind = infra.KindConflict
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err, kind)
	}

	return resultID, nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation row", err, infra.KindDBFailure)
	}
	return res, nil
}

// Cancel persists a cancelled reservation. It reports false when the row was already cancelled.
func (r *ReservationRepository) Cancel(ctx context.Context, res *reservation.Reservation) (bool, error) {
	params := pgstore.CancelReservationParams{
		ID:        res.ID(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	}

	n, err := r.queries.CancelReservation(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel reservation", err)
	}
	return n > 0, nil
}
