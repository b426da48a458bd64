package queries

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

type AvailabilityQueries interface {
	// GetAvailability annotates the slot template of a resource for one day. selected is an
	// optional "HH:MM-HH:MM" candidate slot.
	GetAvailability(ctx context.Context, resourceID uuid.UUID, date string, selected string) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	resources    ResourceStore
	reservations ReservationStore
	clock        clock.Clock
	location     *time.Location
	timeout      time.Duration
}

func NewAvailabilityQueries(
	resources ResourceStore,
	reservations ReservationStore,
	clk clock.Clock,
	location *time.Location,
	timeout time.Duration,
) AvailabilityQueries {
	if location == nil {
		location = time.UTC
	}
	return &availabilityQueriesImpl{
		resources:    resources,
		reservations: reservations,
		clock:        clk,
		location:     location,
		timeout:      timeout,
	}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, resourceID uuid.UUID, date string, selected string) (*AvailabilityView, error) {
	day, err := reservation.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	var candidate *schedule.Slot
	if selected != "" {
		s, err := schedule.ParseSlotKey(selected)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidSlot)
		}
		candidate = &s
	}

	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	res, err := q.resources.FindByID(ctx, resourceID)
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrResourceNotFound)
	}

	rows, err := q.reservations.ListActiveByResourceDate(ctx, resourceID, day.Time())
	if err != nil {
		// Fail closed: without the day's reservations no slot may be shown as free.
		slog.Warn("availability read failed",
			"resource_id", resourceID,
			"date", day.String(),
			"kind", repoKind(err),
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrTransientStore)
	}

	bookings := make([]schedule.Booking, len(rows))
	for i, r := range rows {
		bookings[i] = schedule.Booking{
			Date:      r.Date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Cancelled: r.Status == reservation.StatusCancelled.String(),
		}
	}

	annotated, err := schedule.Resolve(schedule.GenerateSlots(res.Type), bookings, day.String(), candidate)
	if err != nil {
		slog.Error("stored reservation has unreadable times",
			"resource_id", resourceID,
			"date", day.String(),
			"error", err.Error())
		return nil, errs.Mark(errs.Wrap(err, "resolve availability"), errs.ErrTransientStore)
	}

	past := day.Before(reservation.DateOf(clock.Today(q.clock, q.location)))
	view := &AvailabilityView{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		ResourceType: res.Type,
		Available:    res.Available,
		Date:         day.String(),
		PastDate:     past,
		Slots:        make([]SlotAvailabilityView, len(annotated)),
	}
	for i, a := range annotated {
		view.Slots[i] = SlotAvailabilityView{
			SlotView: toSlotView(a.Slot),
			Booked:   a.Booked,
			Selected: a.Selected,
			Bookable: res.Available && !a.Booked && !past,
		}
	}
	return view, nil
}

func repoKind(err error) string {
	for _, k := range []infra.RepositoryErrorKind{infra.KindUnavailable, infra.KindDBFailure} {
		if infra.IsKind(err, k) {
			return string(k)
		}
	}
	return "unknown"
}
