package errs

import "errors"

// Sentinel errors shared by the command and query use cases
var (
	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidSlot         = errors.New("invalid slot")
	ErrPastDate            = errors.New("date is in the past")
	ErrSlotConflict        = errors.New("slot already reserved")

	// Idempotency errors
	ErrIdempotencyKeyReused  = errors.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress = errors.New("idempotency in progress")

	// Store errors; safe to retry
	ErrTransientStore = errors.New("store temporarily unavailable")
)
