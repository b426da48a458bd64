package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceView represents read-optimized resource data
type ResourceView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Available   bool            `json:"available"`
	SlotMinutes int             `json:"slot_minutes"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReservationView carries both the HH:MM labels and the linear booking-day minutes
type ReservationView struct {
	ID           uuid.UUID       `json:"id"`
	ResourceID   uuid.UUID       `json:"resource_id"`
	ResourceName string          `json:"resource_name"`
	ResourceType string          `json:"resource_type"`
	UserID       uuid.UUID       `json:"user_id"`
	Date         string          `json:"date"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	StartMinute  int             `json:"start_minute"`
	EndMinute    int             `json:"end_minute"`
	Duration     int             `json:"duration"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type SlotView struct {
	Key         string `json:"key"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Duration    int    `json:"duration"`
}

type ResourceSlotsView struct {
	ResourceID   uuid.UUID  `json:"resource_id"`
	ResourceType string     `json:"resource_type"`
	SlotMinutes  int        `json:"slot_minutes"`
	Slots        []SlotView `json:"slots"`
}

type SlotAvailabilityView struct {
	SlotView
	Booked   bool `json:"booked"`
	Selected bool `json:"selected"`
	Bookable bool `json:"bookable"`
}

type AvailabilityView struct {
	ResourceID   uuid.UUID              `json:"resource_id"`
	ResourceName string                 `json:"resource_name"`
	ResourceType string                 `json:"resource_type"`
	Available    bool                   `json:"available"`
	Date         string                 `json:"date"`
	PastDate     bool                   `json:"past_date"`
	Slots        []SlotAvailabilityView `json:"slots"`
}

type ReservationPage struct {
	Items []*ReservationView
	Next  *Cursor
}
