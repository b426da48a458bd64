package pgstore

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Resource struct {
	ID          uuid.UUID
	Name        string
	Type        string
	HourlyRate  string
	Available   bool
	Description pgtype.Text
	Location    pgtype.Text
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Reservation struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	UserID      uuid.UUID
	BookingDate pgtype.Date
	StartTime   string
	EndTime     string
	StartMinute int32
	EndMinute   int32
	Duration    int32
	Status      string
	TotalPrice  string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type IdempotencyKey struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultReservationID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

type OutboxEvent struct {
	ID        uuid.UUID
	Topic     string
	EntityID  uuid.UUID
	Payload   []byte
	Status    string
	Attempts  int32
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
