package reservation

import (
	"errors"
	"time"

	"court-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSlot         = errors.New("requested time is not a bookable slot")
	ErrPastDate            = errors.New("cannot book a date in the past")
	ErrResourceUnavailable = errors.New("resource is not available for booking")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	date       Date
	slot       schedule.Slot
	status     Status
	totalPrice decimal.Decimal
	createdAt  time.Time
	updatedAt  time.Time
}

func ReconstructReservation(
	id, resourceID, userID uuid.UUID,
	date Date,
	slot schedule.Slot,
	status Status,
	totalPrice decimal.Decimal,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		date:       date,
		slot:       slot,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Cancel is idempotent; it reports whether the status actually changed.
func (r *Reservation) Cancel(now time.Time) bool {
	if r.status == StatusCancelled {
		return false
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return true
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

// ConflictsWith reports whether both reservations hold overlapping time on the same resource and day.
func (r *Reservation) ConflictsWith(other *Reservation) bool {
	if !r.IsActive() || !other.IsActive() {
		return false
	}
	return r.resourceID == other.resourceID && r.date == other.date && r.slot.Overlaps(other.slot)
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) ResourceID() uuid.UUID       { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) Date() Date                  { return r.date }
func (r *Reservation) Slot() schedule.Slot         { return r.slot }
func (r *Reservation) StartTime() string           { return r.slot.StartLabel() }
func (r *Reservation) EndTime() string             { return r.slot.EndLabel() }
func (r *Reservation) DurationMinutes() int        { return r.slot.Duration() }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalPrice() decimal.Decimal { return r.totalPrice }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
