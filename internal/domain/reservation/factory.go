package reservation

import (
	"fmt"
	"time"

	"court-booking/internal/domain/resource"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	// Location is the venue time zone that defines "today"
	Location      *time.Location
	InitialStatus Status
}

func NewFactory(clk clock.Clock, priceCalculator PriceCalculator, loc *time.Location, initial Status) *Factory {
	if loc == nil {
		loc = time.UTC
	}
	if initial != StatusPending {
		initial = StatusConfirmed
	}
	return &Factory{
		Clock:           clk,
		PriceCalculator: priceCalculator,
		Location:        loc,
		InitialStatus:   initial,
	}
}

type Request struct {
	UserID    uuid.UUID
	Date      Date
	StartTime string
	EndTime   string
}

// CreateReservation checks the booking preconditions against the resource and prices the slot.
// Occupancy is not checked here; that belongs to the store transaction.
func (f *Factory) CreateReservation(res *resource.Resource, req Request) (*Reservation, error) {
	if !res.IsAvailable() {
		return nil, ErrResourceUnavailable
	}

	slot, err := schedule.MatchSlot(res.Type(), req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}

	if req.Date.Before(DateOf(clock.Today(f.Clock, f.Location))) {
		return nil, ErrPastDate
	}

	price := f.PriceCalculator.Calculate(res.HourlyRate(), slot)
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	now := f.Clock.Now()
	return &Reservation{
		id:         uuid.New(),
		resourceID: res.ID(),
		userID:     req.UserID,
		date:       req.Date,
		slot:       slot,
		status:     f.InitialStatus,
		totalPrice: price,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}
