package resource

import (
	"errors"
	"strings"

	"court-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrEmptyResourceType   = errors.New("resource type cannot be empty")
	ErrNegativeHourlyRate  = errors.New("hourly rate cannot be negative")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
)

const (
	MaxResourceNameLength = 255
)

// Resource is owned by the catalog; the booking engine only reads it.
type Resource struct {
	id         uuid.UUID
	name       string
	kind       string
	hourlyRate decimal.Decimal
	available  bool
}

func NewResource(id uuid.UUID, name, kind string, hourlyRate decimal.Decimal, available bool) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(kind) == "" {
		return nil, ErrEmptyResourceType
	}
	if hourlyRate.IsNegative() {
		return nil, ErrNegativeHourlyRate
	}

	return &Resource{
		id:         id,
		name:       strings.TrimSpace(name),
		kind:       strings.ToLower(strings.TrimSpace(kind)),
		hourlyRate: hourlyRate,
		available:  available,
	}, nil
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) SlotMinutes() int {
	return schedule.SlotMinutesFor(r.kind)
}

func (r *Resource) Slots() []schedule.Slot {
	return schedule.GenerateSlots(r.kind)
}

func (r *Resource) ID() uuid.UUID               { return r.id }
func (r *Resource) Name() string                { return r.name }
func (r *Resource) Type() string                { return r.kind }
func (r *Resource) HourlyRate() decimal.Decimal { return r.hourlyRate }
func (r *Resource) IsAvailable() bool           { return r.available }
