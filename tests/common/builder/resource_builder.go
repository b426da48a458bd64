//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/resource"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ResourceBuilder struct {
	ID         uuid.UUID
	Name       string
	Type       string
	HourlyRate decimal.Decimal
	Available  bool
	CreatedAt  time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:         uuid.New(),
		Name:       "Court 1",
		Type:       "futbol",
		HourlyRate: decimal.RequireFromString("25000.00"),
		Available:  true,
		CreatedAt:  time.Now(),
	}
}

func (b *ResourceBuilder) BuildDomain() *resource.Resource {
	res, err := resource.NewResource(b.ID, b.Name, b.Type, b.HourlyRate, b.Available)
	if err != nil {
		panic("ResourceBuilder: " + err.Error())
	}
	return res
}

func (b *ResourceBuilder) BuildInfra() pgstore.Resource {
	return pgstore.Resource{
		ID:         b.ID,
		Name:       b.Name,
		Type:       b.Type,
		HourlyRate: b.HourlyRate.StringFixed(2),
		Available:  b.Available,
		CreatedAt:  pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		HourlyRate:  b.HourlyRate,
		Available:   b.Available,
		SlotMinutes: schedule.SlotMinutesFor(b.Type),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ResourceBuilder) BuildSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:         b.ID,
		Name:       b.Name,
		Type:       b.Type,
		HourlyRate: b.HourlyRate,
		Available:  b.Available,
	}
}

func (b *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	b.ID = id
	return b
}

func (b *ResourceBuilder) WithType(resourceType string) *ResourceBuilder {
	b.Type = resourceType
	return b
}

func (b *ResourceBuilder) WithHourlyRate(rate string) *ResourceBuilder {
	b.HourlyRate = decimal.RequireFromString(rate)
	return b
}

func (b *ResourceBuilder) AsUnavailable() *ResourceBuilder {
	b.Available = false
	return b
}
