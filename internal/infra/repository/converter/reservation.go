package converter

import (
	"fmt"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) pgstore.CreateReservationParams {
	slot := res.Slot()
	return pgstore.CreateReservationParams{
		ID:          res.ID(),
		ResourceID:  res.ResourceID(),
		UserID:      res.UserID(),
		BookingDate: pgconv.DateToPgtype(res.Date().Time()),
		StartTime:   slot.StartLabel(),
		EndTime:     slot.EndLabel(),
		StartMinute: int32(slot.Start), // #nosec G115 -- bounded by the booking window
		EndMinute:   int32(slot.End),   // #nosec G115 -- bounded by the booking window
		Status:      res.Status().String(),
		TotalPrice:  pgconv.DecimalToText(res.TotalPrice()),
		CreatedAt:   pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ReservationFromInfra(row pgstore.Reservation) (*reservation.Reservation, error) {
	day, err := pgconv.DateFromPgtype(row.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	price, err := pgconv.DecimalFromText(row.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.ResourceID,
		row.UserID,
		reservation.DateOf(day),
		schedule.Slot{Start: int(row.StartMinute), End: int(row.EndMinute)},
		status,
		price,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
