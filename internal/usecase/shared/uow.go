package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra/pgstore"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db pgstore.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db pgstore.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() pgstore.DBTX
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	LockDay(ctx context.Context, resourceID uuid.UUID, date reservation.Date) error
	FindOverlapping(ctx context.Context, resourceID uuid.UUID, date reservation.Date, slot schedule.Slot) ([]uuid.UUID, error)
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Cancel(ctx context.Context, res *reservation.Reservation) (bool, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, reservationID uuid.UUID) error
	Release(ctx context.Context, key, userID uuid.UUID) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, entityID uuid.UUID, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, now time.Time, limit int32) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID, attempts int32, now time.Time) error
	Reschedule(ctx context.Context, id uuid.UUID, attempts int32, lastError string, runAt time.Time, failed bool) error
}

// EventPublisher delivers one encoded event to the broker. key is the routing or partition key.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, body []byte) error
	Close() error
}
