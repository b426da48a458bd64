package queries

import (
	"context"
	"time"

	"court-booking/internal/domain/schedule"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/queries/resource_mock.go -package=queriesmock

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context) ([]*ResourceView, error)
	Slots(ctx context.Context, id uuid.UUID) (*ResourceSlotsView, error)
}

type resourceQueriesImpl struct {
	store   ResourceStore
	timeout time.Duration
}

func NewResourceQueries(store ResourceStore, timeout time.Duration) ResourceQueries {
	return &resourceQueriesImpl{store: store, timeout: timeout}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrResourceNotFound)
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context) ([]*ResourceView, error) {
	ctx, cancel := withStoreTimeout(ctx, q.timeout)
	defer cancel()

	views, err := q.store.List(ctx)
	if err != nil {
		return nil, translateStoreErr(err, errs.ErrResourceNotFound)
	}
	return views, nil
}

func (q *resourceQueriesImpl) Slots(ctx context.Context, id uuid.UUID) (*ResourceSlotsView, error) {
	res, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateSlots(res.Type)
	out := &ResourceSlotsView{
		ResourceID:   res.ID,
		ResourceType: res.Type,
		SlotMinutes:  schedule.SlotMinutesFor(res.Type),
		Slots:        make([]SlotView, len(slots)),
	}
	for i, s := range slots {
		out.Slots[i] = toSlotView(s)
	}
	return out, nil
}

func toSlotView(s schedule.Slot) SlotView {
	return SlotView{
		Key:         s.Key(),
		StartTime:   s.StartLabel(),
		EndTime:     s.EndLabel(),
		StartMinute: s.Start,
		EndMinute:   s.End,
		Duration:    s.Duration(),
	}
}

// withStoreTimeout bounds a store call; a zero timeout leaves the caller's deadline alone.
func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
