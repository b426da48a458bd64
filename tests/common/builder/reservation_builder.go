//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	ResourceType string
	UserID       uuid.UUID
	Date         string
	StartTime    string
	EndTime      string
	Status       reservation.Status
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:           uuid.New(),
		ResourceID:   uuid.New(),
		ResourceName: "Court 1",
		ResourceType: "futbol",
		UserID:       uuid.New(),
		Date:         now.AddDate(0, 0, 1).Format(reservation.DateLayout),
		StartTime:    "18:00",
		EndTime:      "19:00",
		Status:       reservation.StatusConfirmed,
		TotalPrice:   decimal.RequireFromString("25000.00"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) slot() schedule.Slot {
	start, end, err := schedule.NormalizeRange(b.StartTime, b.EndTime)
	if err != nil {
		panic("ReservationBuilder: " + err.Error())
	}
	return schedule.Slot{Start: start, End: end}
}

func (b *ReservationBuilder) date() reservation.Date {
	d, err := reservation.ParseDate(b.Date)
	if err != nil {
		panic("ReservationBuilder: " + err.Error())
	}
	return d
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.ResourceID, b.UserID,
		b.date(), b.slot(), b.Status, b.TotalPrice,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() pgstore.Reservation {
	slot := b.slot()
	return pgstore.Reservation{
		ID:          b.ID,
		ResourceID:  b.ResourceID,
		UserID:      b.UserID,
		BookingDate: pgtype.Date{Time: b.date().Time(), Valid: true},
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		StartMinute: int32(slot.Start),
		EndMinute:   int32(slot.End),
		Duration:    int32(slot.Duration()),
		Status:      b.Status.String(),
		TotalPrice:  b.TotalPrice.StringFixed(2),
		CreatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *ReservationBuilder) BuildViewRow() pgstore.ReservationViewRow {
	return pgstore.ReservationViewRow{
		Reservation:  b.BuildInfra(),
		ResourceName: b.ResourceName,
		ResourceType: b.ResourceType,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	slot := b.slot()
	return &queries.ReservationView{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		ResourceType: b.ResourceType,
		UserID:       b.UserID,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		StartMinute:  slot.Start,
		EndMinute:    slot.End,
		Duration:     slot.Duration(),
		Status:       b.Status.String(),
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
}

func (b *ReservationBuilder) BuildCreateInput(idempotencyKey *uuid.UUID) commands.CreateReservationInput {
	return b.BuildCreateRequestDTO().ToInput(idempotencyKey)
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithResourceID(resourceID uuid.UUID) *ReservationBuilder {
	b.ResourceID = resourceID
	return b
}

func (b *ReservationBuilder) WithResourceType(resourceType string) *ReservationBuilder {
	b.ResourceType = resourceType
	return b
}

func (b *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	b.UserID = userID
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = date
	return b
}

func (b *ReservationBuilder) WithSlot(start, end string) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithCreatedAt(createdAt time.Time) *ReservationBuilder {
	b.CreatedAt = createdAt
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	return b
}
