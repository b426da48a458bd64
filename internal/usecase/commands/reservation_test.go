//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/schedule"
	"court-booking/internal/infra"
	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	queriesmock "court-booking/tests/mock/queries"
	sharedmock "court-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const bookingDate = "2030-05-17"

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	reads        *sharedmock.MockCommandReads
	reservations *sharedmock.MockReservationRepository
	idempotency  *sharedmock.MockIdempotencyRepository
	outbox       *sharedmock.MockOutboxRepository
	views        *queriesmock.MockReservationQueries
	clock        *clock.MockClock
	useCase      commands.ReservationCommands
	resource     *builder.ResourceBuilder
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.reservations = sharedmock.NewMockReservationRepository(s.ctrl)
	s.idempotency = sharedmock.NewMockIdempotencyRepository(s.ctrl)
	s.outbox = sharedmock.NewMockOutboxRepository(s.ctrl)
	s.views = queriesmock.NewMockReservationQueries(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2030, 5, 16, 12, 0, 0, 0, time.UTC))
	s.resource = builder.NewResourceBuilder().WithType("futbol")

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.reservations).AnyTimes()
	s.tx.EXPECT().Idempotency().Return(s.idempotency).AnyTimes()
	s.tx.EXPECT().Outbox().Return(s.outbox).AnyTimes()

	factory := reservation.NewFactory(s.clock, reservation.NewDefaultPriceCalculator(), time.UTC, reservation.StatusConfirmed)
	s.useCase = commands.NewReservationUseCase(s.uow, factory, s.views, s.clock, commands.Options{
		StoreTimeout:   time.Second,
		IdempotencyTTL: time.Hour,
	})
}

func TestReservationCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) input(start, end string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID: s.resource.ID,
		UserID:     uuid.New(),
		Date:       bookingDate,
		StartTime:  start,
		EndTime:    end,
	}
}

// expectInsert wires the happy transaction and returns the view the read side will serve.
func (s *ReservationCommandsTestSuite) expectInsert(in commands.CreateReservationInput) *queries.ReservationView {
	var created uuid.UUID
	s.reservations.EXPECT().LockDay(gomock.Any(), in.ResourceID, gomock.Any()).Return(nil)
	s.reservations.EXPECT().FindOverlapping(gomock.Any(), in.ResourceID, gomock.Any(), gomock.Any()).Return(nil, nil)
	s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
			created = res.ID()
			return res.ID(), nil
		})
	s.outbox.EXPECT().Enqueue(gomock.Any(), messaging.RoutingKey(messaging.EntityReservation, messaging.EventCreated), gomock.Any(), gomock.Any(), s.clock.Now()).
		Return(nil)

	view := builder.NewReservationBuilder().
		WithResourceID(in.ResourceID).
		WithUserID(in.UserID).
		WithDate(in.Date).
		WithSlot(in.StartTime, in.EndTime).
		BuildView()
	s.views.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
			s.Equal(created, id)
			view.ID = id
			return view, nil
		})
	return view
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_Success() {
	in := s.input("18:00", "19:00")
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
	want := s.expectInsert(in)

	result, err := s.useCase.CreateReservation(context.Background(), in)

	s.Require().NoError(err)
	s.False(result.IsReplayed)
	s.Equal(want, result.Reservation)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_SlotChosenByStartOnly() {
	in := s.input("23:00", "")
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
	s.reservations.EXPECT().LockDay(gomock.Any(), in.ResourceID, gomock.Any()).Return(nil)
	s.reservations.EXPECT().FindOverlapping(gomock.Any(), in.ResourceID, gomock.Any(), schedule.Slot{Start: 1380, End: 1440}).Return(nil, nil)
	s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
			s.Equal("23:00-00:00", res.Slot().Key())
			return res.ID(), nil
		})
	s.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.views.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(builder.NewReservationBuilder().BuildView(), nil)

	_, err := s.useCase.CreateReservation(context.Background(), in)
	s.Require().NoError(err)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_CompletesIdempotencyKey() {
	key := uuid.New()
	in := s.input("18:00", "19:00")
	in.IdempotencyKey = &key

	s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, "POST /api/reservations", gomock.Any(), s.clock.Now().Add(time.Hour)).
		Return(true, nil)
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
	s.expectInsert(in)
	s.idempotency.EXPECT().Complete(gomock.Any(), key, in.UserID, gomock.Any()).Return(nil)

	result, err := s.useCase.CreateReservation(context.Background(), in)

	s.Require().NoError(err)
	s.False(result.IsReplayed)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_IdempotencyReplay() {
	key := uuid.New()
	in := s.input("18:00", "19:00")
	in.IdempotencyKey = &key
	existingID := uuid.New()
	var hash string

	s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
			hash = requestHash
			return false, nil
		})
	s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).
		DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key:                 key,
				UserID:              in.UserID,
				Status:              shared.IdempotencyStatusCompleted,
				RequestHash:         hash,
				ResultReservationID: &existingID,
				ExpiresAt:           s.clock.Now().Add(time.Minute),
			}, nil
		})
	view := builder.NewReservationBuilder().WithID(existingID).BuildView()
	s.views.EXPECT().GetByID(gomock.Any(), existingID).Return(view, nil)

	result, err := s.useCase.CreateReservation(context.Background(), in)

	s.Require().NoError(err)
	s.True(result.IsReplayed)
	s.Equal(existingID, result.Reservation.ID)
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_IdempotencyRejections() {
	testCases := []struct {
		name        string
		status      string
		sameBody    bool
		expectedErr error
	}{
		{name: "different body", status: shared.IdempotencyStatusCompleted, sameBody: false, expectedErr: errs.ErrIdempotencyKeyReused},
		{name: "first request still running", status: shared.IdempotencyStatusProcessing, sameBody: true, expectedErr: errs.ErrIdempotencyInProgress},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			key := uuid.New()
			in := s.input("18:00", "19:00")
			in.IdempotencyKey = &key
			var hash string

			s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
					hash = requestHash
					return false, nil
				})
			s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).
				DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
					stored := hash
					if !tc.sameBody {
						stored = "another-request"
					}
					return &shared.IdempotencyRecord{
						Status:      tc.status,
						RequestHash: stored,
						ExpiresAt:   s.clock.Now().Add(time.Minute),
					}, nil
				})

			result, err := s.useCase.CreateReservation(context.Background(), in)

			s.Nil(result)
			s.True(errs.Is(err, tc.expectedErr), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_ExpiredKey() {
	s.Run("claim won proceeds with the booking", func() {
		key := uuid.New()
		in := s.input("18:00", "19:00")
		in.IdempotencyKey = &key

		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).Return(&shared.IdempotencyRecord{
			Status:      shared.IdempotencyStatusCompleted,
			RequestHash: "stale",
			ExpiresAt:   s.clock.Now().Add(-time.Minute),
		}, nil)
		s.idempotency.EXPECT().ClaimExpired(gomock.Any(), key, in.UserID, gomock.Any(), s.clock.Now().Add(time.Hour)).Return(true, nil)
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
		s.expectInsert(in)
		s.idempotency.EXPECT().Complete(gomock.Any(), key, in.UserID, gomock.Any()).Return(nil)

		result, err := s.useCase.CreateReservation(context.Background(), in)
		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})

	s.Run("claim lost reports in progress", func() {
		key := uuid.New()
		in := s.input("18:00", "19:00")
		in.IdempotencyKey = &key

		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, in.UserID).Return(&shared.IdempotencyRecord{
			Status:    shared.IdempotencyStatusProcessing,
			ExpiresAt: s.clock.Now().Add(-time.Minute),
		}, nil)
		s.idempotency.EXPECT().ClaimExpired(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := s.useCase.CreateReservation(context.Background(), in)
		s.True(errs.Is(err, errs.ErrIdempotencyInProgress), "got %v", err)
	})
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_ConflictReleasesKey() {
	key := uuid.New()
	in := s.input("18:00", "19:00")
	in.IdempotencyKey = &key

	s.idempotency.EXPECT().TryInsert(gomock.Any(), key, in.UserID, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
	s.reservations.EXPECT().LockDay(gomock.Any(), in.ResourceID, gomock.Any()).Return(nil)
	s.reservations.EXPECT().FindOverlapping(gomock.Any(), in.ResourceID, gomock.Any(), schedule.Slot{Start: 1080, End: 1140}).
		Return([]uuid.UUID{uuid.New()}, nil)
	s.idempotency.EXPECT().Release(gomock.Any(), key, in.UserID).
		DoAndReturn(func(ctx context.Context, _, _ uuid.UUID) error {
			s.NoError(ctx.Err())
			return nil
		})

	result, err := s.useCase.CreateReservation(context.Background(), in)

	s.Nil(result)
	s.True(errs.Is(err, errs.ErrSlotConflict), "got %v", err)
	s.Equal("refresh availability and pick another slot", errs.Hint(err))
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_StoreErrors() {
	testCases := []struct {
		name        string
		setup       func(in commands.CreateReservationInput)
		expectedErr error
	}{
		{
			name: "exclusion constraint fires on insert",
			setup: func(in commands.CreateReservationInput) {
				s.reservations.EXPECT().LockDay(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				s.reservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, infra.WrapRepoErr("insert", errors.New("23P01"), infra.KindConflict))
			},
			expectedErr: errs.ErrSlotConflict,
		},
		{
			name: "duplicate key on insert",
			setup: func(in commands.CreateReservationInput) {
				s.reservations.EXPECT().LockDay(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				s.reservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(uuid.Nil, infra.WrapRepoErr("insert", errors.New("23505"), infra.KindDuplicateKey))
			},
			expectedErr: errs.ErrSlotConflict,
		},
		{
			name: "lock times out",
			setup: func(in commands.CreateReservationInput) {
				s.reservations.EXPECT().LockDay(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(infra.WrapRepoErr("lock", context.DeadlineExceeded))
			},
			expectedErr: errs.ErrTransientStore,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := s.input("18:00", "19:00")
			s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource.BuildSnapshot(), nil)
			tc.setup(in)

			result, err := s.useCase.CreateReservation(context.Background(), in)

			s.Nil(result)
			s.True(errs.Is(err, tc.expectedErr), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_Rejected() {
	testCases := []struct {
		name        string
		snapshot    func() (*shared.ResourceSnapshot, error)
		start, end  string
		date        string
		expectedErr error
	}{
		{
			name: "unknown resource",
			snapshot: func() (*shared.ResourceSnapshot, error) {
				return nil, infra.WrapRepoErr("resource", nil, infra.KindNotFound)
			},
			start: "18:00", end: "19:00", date: bookingDate,
			expectedErr: errs.ErrResourceNotFound,
		},
		{
			name: "resource switched off",
			snapshot: func() (*shared.ResourceSnapshot, error) {
				return builder.NewResourceBuilder().AsUnavailable().BuildSnapshot(), nil
			},
			start: "18:00", end: "19:00", date: bookingDate,
			expectedErr: errs.ErrResourceUnavailable,
		},
		{
			name: "date already gone",
			snapshot: func() (*shared.ResourceSnapshot, error) {
				return s.resource.BuildSnapshot(), nil
			},
			start: "18:00", end: "19:00", date: "2030-05-15",
			expectedErr: errs.ErrPastDate,
		},
		{
			name: "range outside the template",
			snapshot: func() (*shared.ResourceSnapshot, error) {
				return s.resource.BuildSnapshot(), nil
			},
			start: "18:30", end: "19:30", date: bookingDate,
			expectedErr: errs.ErrInvalidSlot,
		},
		{
			name: "malformed date",
			snapshot: func() (*shared.ResourceSnapshot, error) {
				return s.resource.BuildSnapshot(), nil
			},
			start: "18:00", end: "19:00", date: "17-05-2030",
			expectedErr: errs.ErrInvalidSlot,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := s.input(tc.start, tc.end)
			in.Date = tc.date
			s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).DoAndReturn(
				func(context.Context, uuid.UUID) (*shared.ResourceSnapshot, error) { return tc.snapshot() })

			result, err := s.useCase.CreateReservation(context.Background(), in)

			s.Nil(result)
			s.True(errs.Is(err, tc.expectedErr), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestCancelReservation() {
	s.Run("active reservation is cancelled and announced", func() {
		existing := builder.NewReservationBuilder().WithDate(bookingDate)
		s.reservations.EXPECT().GetForUpdate(gomock.Any(), existing.ID).Return(existing.BuildDomain(), nil)
		s.reservations.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, res *reservation.Reservation) (bool, error) {
				s.Equal(reservation.StatusCancelled, res.Status())
				return true, nil
			})
		s.outbox.EXPECT().Enqueue(gomock.Any(), messaging.RoutingKey(messaging.EntityReservation, messaging.EventCancelled), existing.ID, gomock.Any(), gomock.Any()).
			Return(nil)
		s.views.EXPECT().GetByID(gomock.Any(), existing.ID).Return(existing.AsCancelled().BuildView(), nil)

		result, err := s.useCase.CancelReservation(context.Background(), existing.ID)

		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal("cancelled", result.Reservation.Status)
	})

	s.Run("second cancel is a no-op", func() {
		existing := builder.NewReservationBuilder().AsCancelled()
		s.reservations.EXPECT().GetForUpdate(gomock.Any(), existing.ID).Return(existing.BuildDomain(), nil)
		s.views.EXPECT().GetByID(gomock.Any(), existing.ID).Return(existing.BuildView(), nil)

		result, err := s.useCase.CancelReservation(context.Background(), existing.ID)

		s.Require().NoError(err)
		s.False(result.Changed)
	})

	s.Run("unknown reservation", func() {
		id := uuid.New()
		s.reservations.EXPECT().GetForUpdate(gomock.Any(), id).Return(nil, infra.WrapRepoErr("get", nil, infra.KindNotFound))

		result, err := s.useCase.CancelReservation(context.Background(), id)

		s.Nil(result)
		s.True(errs.Is(err, errs.ErrReservationNotFound), "got %v", err)
	})
}

func TestCreateReservation_RequestHashIgnoresKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	idem := sharedmock.NewMockIdempotencyRepository(ctrl)
	reads := sharedmock.NewMockCommandReads(ctrl)

	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error { return fn(ctx, tx) }).AnyTimes()
	tx.EXPECT().Idempotency().Return(idem).AnyTimes()
	tx.EXPECT().Reads().Return(reads).AnyTimes()

	var hashes []string
	idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
			hashes = append(hashes, requestHash)
			return false, nil
		}).Times(2)
	reads.EXPECT().IdempotencyByKey(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&shared.IdempotencyRecord{Status: shared.IdempotencyStatusProcessing, ExpiresAt: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)}, nil).
		Times(2)

	clk := clock.NewMockClock(time.Date(2030, 5, 16, 12, 0, 0, 0, time.UTC))
	uc := commands.NewReservationUseCase(uow, reservation.NewFactory(clk, reservation.NewDefaultPriceCalculator(), time.UTC, reservation.StatusConfirmed), nil, clk, commands.Options{})

	in := commands.CreateReservationInput{ResourceID: uuid.New(), UserID: uuid.New(), Date: bookingDate, StartTime: "18:00", EndTime: "19:00"}
	k1, k2 := uuid.New(), uuid.New()
	in.IdempotencyKey = &k1
	_, err := uc.CreateReservation(context.Background(), in)
	require.Error(t, err)
	in.IdempotencyKey = &k2
	_, err = uc.CreateReservation(context.Background(), in)
	require.Error(t, err)

	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])
	assert.Len(t, hashes[0], 64)
}
