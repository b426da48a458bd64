package request

import (
	"court-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	Date       string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime  string    `json:"start_time" binding:"required,clock"`
	// EndTime defaults to the end of the slot that starts at StartTime
	EndTime string `json:"end_time,omitempty" binding:"omitempty,clock"`
}

func (r CreateReservationRequest) ToInput(idempotencyKey *uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID:     r.ResourceID,
		UserID:         r.UserID,
		Date:           r.Date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		IdempotencyKey: idempotencyKey,
	}
}

type ListReservationsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After string `form:"after"`
}

type DateQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type AvailabilityQuery struct {
	Date     string `form:"date" binding:"required,datetime=2006-01-02"`
	Selected string `form:"selected" binding:"omitempty,slotkey"`
}
