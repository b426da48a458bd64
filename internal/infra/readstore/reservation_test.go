//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/infra/readstore"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/builder"
	readstoremock "court-booking/tests/mock/readstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row converts to view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		created := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
		b := builder.NewReservationBuilder().
			WithDate("2030-05-17").
			WithSlot("23:00", "00:00").
			WithCreatedAt(created).
			With(func(b *builder.ReservationBuilder) { b.UpdatedAt = created })
		mockQueries.EXPECT().GetReservationViewByID(ctx, gomock.Any(), b.ID).Return(b.BuildViewRow(), nil)

		view, err := store.FindByID(ctx, b.ID)
		require.NoError(t, err)

		expected := &queries.ReservationView{
			ID:           b.ID,
			ResourceID:   b.ResourceID,
			ResourceName: b.ResourceName,
			ResourceType: b.ResourceType,
			UserID:       b.UserID,
			Date:         "2030-05-17",
			StartTime:    "23:00",
			EndTime:      "00:00",
			StartMinute:  1380,
			EndMinute:    1440,
			Duration:     60,
			Status:       "confirmed",
			TotalPrice:   b.TotalPrice,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
		if diff := cmp.Diff(expected, view); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("error: reservation not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		id := uuid.New()
		mockQueries.EXPECT().GetReservationViewByID(ctx, gomock.Any(), id).Return(pgstore.ReservationViewRow{}, pgx.ErrNoRows)

		view, err := store.FindByID(ctx, id)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Nil(t, view)
	})
}

func TestReservationReadStore_ListActiveByResourceDate(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	day := time.Date(2030, 5, 17, 0, 0, 0, 0, time.UTC)

	t.Run("success: passes resource and calendar day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		rows := []pgstore.ReservationViewRow{
			builder.NewReservationBuilder().WithResourceID(resourceID).WithDate("2030-05-17").WithSlot("10:00", "11:00").BuildViewRow(),
			builder.NewReservationBuilder().WithResourceID(resourceID).WithDate("2030-05-17").WithSlot("01:00", "02:00").BuildViewRow(),
		}
		mockQueries.EXPECT().
			ListActiveReservationsByResourceDate(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ pgstore.DBTX, arg pgstore.ListActiveReservationsByResourceDateParams) ([]pgstore.ReservationViewRow, error) {
				assert.Equal(t, resourceID, arg.ResourceID)
				assert.True(t, arg.BookingDate.Valid)
				assert.Equal(t, day, arg.BookingDate.Time)
				return rows, nil
			})

		views, err := store.ListActiveByResourceDate(ctx, resourceID, day)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, 600, views[0].StartMinute)
		assert.Equal(t, 1500, views[1].StartMinute)
		assert.Equal(t, 1560, views[1].EndMinute)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListActiveReservationsByResourceDate(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		_, err := store.ListActiveByResourceDate(ctx, resourceID, day)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationReadStore_FindByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("first page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().
			ListReservationsByUserFirstPage(ctx, gomock.Any(), pgstore.ListReservationsByUserFirstPageParams{UserID: userID, Limit: 21}).
			Return([]pgstore.ReservationViewRow{builder.NewReservationBuilder().WithUserID(userID).BuildViewRow()}, nil)

		views, err := store.FindByUserIDFirstPage(ctx, userID, 21)
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("keyset page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		lastID := uuid.New()
		lastCreated := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
		mockQueries.EXPECT().
			ListReservationsByUserKeyset(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ pgstore.DBTX, arg pgstore.ListReservationsByUserKeysetParams) ([]pgstore.ReservationViewRow, error) {
				assert.Equal(t, userID, arg.UserID)
				assert.Equal(t, lastID, arg.ID)
				assert.True(t, lastCreated.Equal(arg.CreatedAt.Time))
				assert.Equal(t, int32(5), arg.Limit)
				return nil, nil
			})

		views, err := store.FindByUserIDKeyset(ctx, userID, lastCreated, lastID, 5)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
