package readstore

import (
	"context"

	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/readstore/resource_mock.go -package=readstoremock

type ResourceReadQueries interface {
	GetResourceByID(ctx context.Context, db pgstore.DBTX, id uuid.UUID) (pgstore.Resource, error)
	ListResources(ctx context.Context, db pgstore.DBTX) ([]pgstore.Resource, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
	db      pgstore.DBTX
}

func NewResourceReadStore(queries ResourceReadQueries, db pgstore.DBTX) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	view, err := toResourceView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode resource row", err, infra.KindDBFailure)
	}
	return view, nil
}

func (r *ResourceReadStore) List(ctx context.Context) ([]*queries.ResourceView, error) {
	rows, err := r.queries.ListResources(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}

	result := make([]*queries.ResourceView, 0, len(rows))
	for _, row := range rows {
		view, err := toResourceView(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode resource row", err, infra.KindDBFailure)
		}
		result = append(result, view)
	}

	return result, nil
}

func toResourceView(row pgstore.Resource) (*queries.ResourceView, error) {
	rate, err := pgconv.DecimalFromText(row.HourlyRate)
	if err != nil {
		return nil, err
	}
	return &queries.ResourceView{
		ID:          row.ID,
		Name:        row.Name,
		Type:        row.Type,
		HourlyRate:  rate,
		Available:   row.Available,
		SlotMinutes: schedule.SlotMinutesFor(row.Type),
		Description: pgconv.StringPtrFromPgtype(row.Description),
		Location:    pgconv.StringPtrFromPgtype(row.Location),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
