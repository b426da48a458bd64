//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra"
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/infra/repository"
	"court-booking/tests/common/builder"
	repositorymock "court-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// LockDay Tests
// =============================================================================

func TestRepository_LockDay(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.MustParse("7f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f")
	date, err := reservation.ParseDate("2030-05-17")
	require.NoError(t, err)

	t.Run("success: lock key combines resource and day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().
			LockResourceDay(ctx, mockDB, "reservation:7f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f:2030-05-17").
			Return(nil)

		assert.NoError(t, repo.LockDay(ctx, resourceID, date))
	})

	t.Run("error: lock timeout is reported as unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		repo := repository.NewReservationRepository(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().LockResourceDay(ctx, gomock.Any(), gomock.Any()).
			Return(context.DeadlineExceeded)

		err := repo.LockDay(ctx, resourceID, date)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable), "got %v", err)
	})
}

// =============================================================================
// FindOverlapping Tests
// =============================================================================

func TestRepository_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	date, err := reservation.ParseDate("2030-05-17")
	require.NoError(t, err)
	slot := schedule.Slot{Start: 1380, End: 1470}

	testCases := []struct {
		name          string
		rows          []pgstore.ListOverlappingReservationsRow
		queryErr      error
		expectedCount int
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name:          "success: no overlapping reservation",
			rows:          nil,
			expectedCount: 0,
		},
		{
			name: "success: returns ids of overlapping reservations",
			rows: []pgstore.ListOverlappingReservationsRow{
				{ID: uuid.New(), StartMinute: 1320, EndMinute: 1410},
				{ID: uuid.New(), StartMinute: 1440, EndMinute: 1530},
			},
			expectedCount: 2,
		},
		{
			name:       "error: database error occurs",
			queryErr:   errors.New("database connection error"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			mockQueries.EXPECT().
				ListOverlappingReservations(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgstore.DBTX, arg pgstore.ListOverlappingReservationsParams) ([]pgstore.ListOverlappingReservationsRow, error) {
					assert.Equal(t, resourceID, arg.ResourceID)
					assert.Equal(t, int32(1380), arg.StartMinute)
					assert.Equal(t, int32(1470), arg.EndMinute)
					assert.Equal(t, date.Time(), arg.BookingDate.Time)
					return tc.rows, tc.queryErr
				})

			ids, err := repo.FindOverlapping(ctx, resourceID, date, slot)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				assert.Nil(t, ids)
				return
			}
			require.NoError(t, err)
			assert.Len(t, ids, tc.expectedCount)
			for i, row := range tc.rows {
				assert.Equal(t, row.ID, ids[i])
			}
		})
	}
}

// =============================================================================
// Create Reservation Tests
// =============================================================================

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, pgstore.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation created successfully",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, res *reservation.Reservation, tx pgstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pgstore.DBTX, arg pgstore.CreateReservationParams) (uuid.UUID, error) {
						assert.Equal(t, res.ID(), arg.ID)
						assert.Equal(t, "18:00", arg.StartTime)
						assert.Equal(t, "19:00", arg.EndTime)
						assert.Equal(t, int32(1080), arg.StartMinute)
						assert.Equal(t, int32(1140), arg.EndMinute)
						assert.Equal(t, "25000.00", arg.TotalPrice)
						return arg.ID, nil
					})
			},
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgstore.DBTX) {
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(uuid.Nil, errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: active start already taken maps to conflict",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgstore.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(uuid.Nil, dup)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: exclusion constraint maps to conflict",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, tx pgstore.DBTX) {
				excl := &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"}
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(uuid.Nil, excl)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			domainReservation := builder.NewReservationBuilder().BuildDomain()
			tc.setupMock(mockQueries, domainReservation, mockDB)

			reservationID, actualError := repo.Create(ctx, domainReservation)

			if tc.expectedError {
				require.Error(t, actualError)
				if tc.expectKind != "" {
					assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				}
				assert.Equal(t, uuid.Nil, reservationID, "reservationID should be nil when error occurs")
			} else {
				assert.NoError(t, actualError)
				assert.Equal(t, domainReservation.ID(), reservationID)
			}
		})
	}
}

// =============================================================================
// GetForUpdate Tests
// =============================================================================

func TestRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row converts to domain reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		b := builder.NewReservationBuilder().WithSlot("23:30", "01:00").WithResourceType("padel")
		row := b.BuildInfra()
		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, row.ID).Return(row, nil)

		res, err := repo.GetForUpdate(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, row.ID, res.ID())
		assert.Equal(t, schedule.Slot{Start: 1410, End: 1500}, res.Slot())
		assert.Equal(t, "01:00", res.EndTime())
		assert.Equal(t, b.Date, res.Date().String())
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
	})

	t.Run("error: missing row is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		repo := repository.NewReservationRepository(mockQueries, &mockDBTX{})

		id := uuid.New()
		mockQueries.EXPECT().GetReservationForUpdate(ctx, gomock.Any(), id).Return(pgstore.Reservation{}, pgx.ErrNoRows)

		res, err := repo.GetForUpdate(ctx, id)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Nil(t, res)
	})

	t.Run("error: unknown status fails decoding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		repo := repository.NewReservationRepository(mockQueries, &mockDBTX{})

		row := builder.NewReservationBuilder().BuildInfra()
		row.Status = "archived"
		mockQueries.EXPECT().GetReservationForUpdate(ctx, gomock.Any(), row.ID).Return(row, nil)

		_, err := repo.GetForUpdate(ctx, row.ID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// Cancel Tests
// =============================================================================

func TestRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		affected      int64
		queryErr      error
		expectChanged bool
		expectError   bool
	}{
		{name: "success: active reservation cancelled", affected: 1, expectChanged: true},
		{name: "success: already cancelled row is untouched", affected: 0, expectChanged: false},
		{name: "error: database error occurs", queryErr: errors.New("database connection error"), expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res := builder.NewReservationBuilder().AsCancelled().BuildDomain()
			mockQueries.EXPECT().
				CancelReservation(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgstore.DBTX, arg pgstore.CancelReservationParams) (int64, error) {
					assert.Equal(t, res.ID(), arg.ID)
					return tc.affected, tc.queryErr
				})

			changed, err := repo.Cancel(ctx, res)
			if tc.expectError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectChanged, changed)
		})
	}
}

// =============================================================================
// Test Helpers
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the queries mock instead.")
}
