package commands

import (
	"github.com/google/uuid"

	"court-booking/internal/usecase/queries"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

// CreateReservationInput is what a caller may ask for. EndTime may be empty; the template then
// picks the slot that starts at StartTime.
type CreateReservationInput struct {
	ResourceID     uuid.UUID  `json:"resource_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Date           string     `json:"date"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	IdempotencyKey *uuid.UUID `json:"-"`
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type CancelReservationResult struct {
	Reservation *queries.ReservationView
	// Changed is false when the reservation was already cancelled
	Changed bool
}
