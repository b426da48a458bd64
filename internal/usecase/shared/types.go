package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ResourceSnapshot struct {
	ID         uuid.UUID
	Name       string
	Type       string
	HourlyRate decimal.Decimal
	Available  bool
}

type ReservationSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Status     string
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

type OutboxEvent struct {
	ID        uuid.UUID
	Topic     string
	EntityID  uuid.UUID
	Payload   []byte
	Attempts  int32
	CreatedAt time.Time
}
