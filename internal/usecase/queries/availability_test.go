//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/builder"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const availabilityDate = "2030-05-17"

func newAvailabilityQueries(t *testing.T, now time.Time) (queries.AvailabilityQueries, *queriesmock.MockResourceStore, *queriesmock.MockReservationStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	resources := queriesmock.NewMockResourceStore(ctrl)
	reservations := queriesmock.NewMockReservationStore(ctrl)
	q := queries.NewAvailabilityQueries(resources, reservations, clock.NewMockClock(now), time.UTC, time.Second)
	return q, resources, reservations
}

func slotByKey(t *testing.T, view *queries.AvailabilityView, key string) queries.SlotAvailabilityView {
	t.Helper()
	for _, s := range view.Slots {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("slot %s not in availability", key)
	return queries.SlotAvailabilityView{}
}

func TestGetAvailability_MarksBookedSlots(t *testing.T) {
	ctx := context.Background()
	dayBefore := time.Date(2030, 5, 16, 12, 0, 0, 0, time.UTC)

	t.Run("60 minute template with one booking", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, dayBefore)
		res := builder.NewResourceBuilder().WithType("futbol")
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, time.Date(2030, 5, 17, 0, 0, 0, 0, time.UTC)).
			Return([]*queries.ReservationView{
				builder.NewReservationBuilder().WithResourceID(res.ID).WithDate(availabilityDate).WithSlot("18:00", "19:00").BuildView(),
			}, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)

		assert.Len(t, view.Slots, 16)
		assert.False(t, view.PastDate)
		booked := slotByKey(t, view, "18:00-19:00")
		assert.True(t, booked.Booked)
		assert.False(t, booked.Bookable)
		free := slotByKey(t, view, "19:00-20:00")
		assert.False(t, free.Booked)
		assert.True(t, free.Bookable)
		last := view.Slots[len(view.Slots)-1]
		assert.Equal(t, "01:00-02:00", last.Key)
		assert.Equal(t, 1560, last.EndMinute)
	})

	t.Run("off-template booking blocks every slot it overlaps", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, dayBefore)
		res := builder.NewResourceBuilder().WithType("padel")
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).
			Return([]*queries.ReservationView{
				builder.NewReservationBuilder().WithDate(availabilityDate).WithSlot("11:00", "12:30").BuildView(),
			}, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)

		assert.Len(t, view.Slots, 10)
		assert.True(t, slotByKey(t, view, "10:00-11:30").Booked)
		assert.True(t, slotByKey(t, view, "11:30-13:00").Booked)
		assert.False(t, slotByKey(t, view, "13:00-14:30").Booked)
	})

	t.Run("booking across midnight", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, dayBefore)
		res := builder.NewResourceBuilder().WithType("tenis")
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).
			Return([]*queries.ReservationView{
				builder.NewReservationBuilder().WithDate(availabilityDate).WithSlot("23:30", "01:00").BuildView(),
			}, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "23:30-01:00")
		require.NoError(t, err)

		slot := slotByKey(t, view, "23:30-01:00")
		assert.True(t, slot.Booked)
		assert.True(t, slot.Selected)
		assert.False(t, slot.Bookable)
		assert.False(t, slotByKey(t, view, "22:00-23:30").Booked)
	})

	t.Run("cancelled reservations free the slot", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, dayBefore)
		res := builder.NewResourceBuilder()
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).
			Return([]*queries.ReservationView{
				builder.NewReservationBuilder().WithDate(availabilityDate).WithSlot("18:00", "19:00").AsCancelled().BuildView(),
			}, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)
		assert.True(t, slotByKey(t, view, "18:00-19:00").Bookable)
	})
}

func TestGetAvailability_Bookable(t *testing.T) {
	ctx := context.Background()

	t.Run("past date is never bookable", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, time.Date(2030, 5, 18, 9, 0, 0, 0, time.UTC))
		res := builder.NewResourceBuilder()
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).Return(nil, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)
		assert.True(t, view.PastDate)
		for _, s := range view.Slots {
			assert.False(t, s.Bookable, s.Key)
		}
	})

	t.Run("today is not past", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, time.Date(2030, 5, 17, 23, 59, 0, 0, time.UTC))
		res := builder.NewResourceBuilder()
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).Return(nil, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)
		assert.False(t, view.PastDate)
	})

	t.Run("unavailable resource shows slots but none bookable", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, time.Date(2030, 5, 16, 9, 0, 0, 0, time.UTC))
		res := builder.NewResourceBuilder().AsUnavailable()
		resources.EXPECT().FindByID(gomock.Any(), res.ID).Return(res.BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), res.ID, gomock.Any()).Return(nil, nil)

		view, err := q.GetAvailability(ctx, res.ID, availabilityDate, "")
		require.NoError(t, err)
		assert.False(t, view.Available)
		assert.NotEmpty(t, view.Slots)
		for _, s := range view.Slots {
			assert.False(t, s.Bookable, s.Key)
		}
	})
}

func TestGetAvailability_Errors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 5, 16, 9, 0, 0, 0, time.UTC)
	resourceID := uuid.New()

	t.Run("malformed date", func(t *testing.T) {
		q, _, _ := newAvailabilityQueries(t, now)
		_, err := q.GetAvailability(ctx, resourceID, "17/05/2030", "")
		assert.True(t, errs.Is(err, errs.ErrInvalidSlot), "got %v", err)
	})

	t.Run("malformed selected slot", func(t *testing.T) {
		q, _, _ := newAvailabilityQueries(t, now)
		_, err := q.GetAvailability(ctx, resourceID, availabilityDate, "18:00")
		assert.True(t, errs.Is(err, errs.ErrInvalidSlot), "got %v", err)
	})

	t.Run("unknown resource", func(t *testing.T) {
		q, resources, _ := newAvailabilityQueries(t, now)
		resources.EXPECT().FindByID(gomock.Any(), resourceID).
			Return(nil, infra.WrapRepoErr("resource not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := q.GetAvailability(ctx, resourceID, availabilityDate, "")
		assert.True(t, errs.Is(err, errs.ErrResourceNotFound), "got %v", err)
	})

	t.Run("reservation read failure fails closed", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, now)
		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(builder.NewResourceBuilder().WithID(resourceID).BuildView(), nil)
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), resourceID, gomock.Any()).
			Return(nil, infra.WrapRepoErr("list", errors.New("connection reset")))

		view, err := q.GetAvailability(ctx, resourceID, availabilityDate, "")
		assert.Nil(t, view)
		assert.True(t, errs.Is(err, errs.ErrTransientStore), "got %v", err)
	})

	t.Run("unreadable stored times fail closed", func(t *testing.T) {
		q, resources, reservations := newAvailabilityQueries(t, now)
		resources.EXPECT().FindByID(gomock.Any(), resourceID).Return(builder.NewResourceBuilder().WithID(resourceID).BuildView(), nil)
		broken := builder.NewReservationBuilder().WithDate(availabilityDate).BuildView()
		broken.StartTime = "25:99"
		reservations.EXPECT().ListActiveByResourceDate(gomock.Any(), resourceID, gomock.Any()).
			Return([]*queries.ReservationView{broken}, nil)

		view, err := q.GetAvailability(ctx, resourceID, availabilityDate, "")
		assert.Nil(t, view)
		assert.True(t, errs.Is(err, errs.ErrTransientStore), "got %v", err)
	})
}
