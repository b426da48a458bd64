package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/resource"
	"court-booking/internal/infra"
	"court-booking/internal/infra/messaging"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /api/reservations"
	conflictHint              = "refresh availability and pick another slot"
)

var errMissingReplayResult = errs.New("completed idempotency key has no reservation")

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error)
}

type Options struct {
	StoreTimeout   time.Duration
	IdempotencyTTL time.Duration
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	opts               Options
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
	opts Options,
) ReservationCommands {
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}
	return &reservationUseCaseImpl{
		uow:                uow,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		clock:              clk,
		opts:               opts,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	ctx, cancel := uc.withStoreTimeout(ctx)
	defer cancel()

	if in.IdempotencyKey != nil {
		replayed, err := uc.claimIdempotencyKey(ctx, *in.IdempotencyKey, in)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
		}
	}

	view, err := uc.createNewReservation(ctx, in)
	if err != nil {
		if in.IdempotencyKey != nil {
			uc.releaseIdempotencyKey(ctx, *in.IdempotencyKey, in.UserID)
		}
		return nil, err
	}

	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// claimIdempotencyKey makes this request the owner of key, or returns the reservation a completed
// request with the same body produced.
func (uc *reservationUseCaseImpl) claimIdempotencyKey(ctx context.Context, key uuid.UUID, in CreateReservationInput) (*queries.ReservationView, error) {
	requestHash, err := calculateRequestHash(in)
	if err != nil {
		return nil, errs.Wrap(err, "hash reservation request")
	}
	now := uc.clock.Now()
	expiresAt := now.Add(uc.opts.IdempotencyTTL)

	var existing *shared.IdempotencyRecord
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, key, in.UserID, createReservationEndpoint, requestHash, expiresAt)
		if err != nil || inserted {
			return err
		}

		record, err := tx.Reads().IdempotencyByKey(ctx, key, in.UserID)
		if err != nil {
			return err
		}
		if now.After(record.ExpiresAt) {
			claimed, err := tx.Idempotency().ClaimExpired(ctx, key, in.UserID, requestHash, expiresAt)
			if err != nil || claimed {
				return err
			}
			return errs.ErrIdempotencyInProgress
		}
		existing = record
		return nil
	})
	if err != nil {
		return nil, uc.translateErr(err)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, errMissingReplayResult
		}
		return uc.reservationQueries.GetByID(ctx, *existing.ResultReservationID)
	default:
		return nil, errs.ErrIdempotencyInProgress
	}
}

func (uc *reservationUseCaseImpl) releaseIdempotencyKey(ctx context.Context, key, userID uuid.UUID) {
	err := uc.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "user_id", userID, "error", err.Error())
	}
}

func (uc *reservationUseCaseImpl) createNewReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	resourceEntity, err := uc.validateAndGetResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}

	day, err := reservation.ParseDate(in.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	reservationEntity, err := uc.reservationFactory.CreateReservation(resourceEntity, reservation.Request{
		UserID:    in.UserID,
		Date:      day,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})
	if err != nil {
		return nil, translateDomainErr(err)
	}

	reservationID, err := uc.tryReserve(ctx, reservationEntity, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	slog.Info("reservation created",
		"reservation_id", reservationID,
		"resource_id", reservationEntity.ResourceID(),
		"date", reservationEntity.Date().String(),
		"slot", reservationEntity.Slot().Key())

	// Read-after-write: Get the complete reservation view from read store
	return uc.reservationQueries.GetByID(ctx, reservationID)
}

// tryReserve runs the conflict check and the insert in one transaction. The day lock serialises
// writers of the same resource and day; the exclusion constraint backs it up.
func (uc *reservationUseCaseImpl) tryReserve(ctx context.Context, res *reservation.Reservation, idempotencyKey *uuid.UUID) (uuid.UUID, error) {
	var reservationID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		if err := repo.LockDay(ctx, res.ResourceID(), res.Date()); err != nil {
			return err
		}

		overlapping, err := repo.FindOverlapping(ctx, res.ResourceID(), res.Date(), res.Slot())
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return errs.WithHint(errs.Mark(errs.New("slot overlaps an active reservation"), errs.ErrSlotConflict), conflictHint)
		}

		reservationID, err = repo.Create(ctx, res)
		if err != nil {
			return err
		}

		if err := uc.enqueueEvent(ctx, tx, messaging.EventCreated, res); err != nil {
			return err
		}

		if idempotencyKey != nil {
			return tx.Idempotency().Complete(ctx, *idempotencyKey, res.UserID(), reservationID)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, uc.translateErr(err)
	}
	return reservationID, nil
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, id uuid.UUID) (*CancelReservationResult, error) {
	ctx, cancel := uc.withStoreTimeout(ctx)
	defer cancel()

	var changed bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !res.Cancel(uc.clock.Now()) {
			return nil
		}

		changed, err = tx.Reservations().Cancel(ctx, res)
		if err != nil || !changed {
			return err
		}
		return uc.enqueueEvent(ctx, tx, messaging.EventCancelled, res)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, uc.translateErr(err)
	}

	if changed {
		slog.Info("reservation cancelled", "reservation_id", id)
	}

	view, err := uc.reservationQueries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CancelReservationResult{Reservation: view, Changed: changed}, nil
}

func (uc *reservationUseCaseImpl) validateAndGetResource(ctx context.Context, resourceID uuid.UUID) (*resource.Resource, error) {
	snapshot, err := uc.uow.CommandReads().ResourceByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, uc.translateErr(err)
	}

	return resource.NewResource(snapshot.ID, snapshot.Name, snapshot.Type, snapshot.HourlyRate, snapshot.Available)
}

func (uc *reservationUseCaseImpl) enqueueEvent(ctx context.Context, tx shared.Tx, eventType string, res *reservation.Reservation) error {
	slot := res.Slot()
	now := uc.clock.Now()
	payload, err := messaging.Encode(messaging.EntityReservation, eventType, res.ID(), messaging.ReservationData{
		ReservationID: res.ID(),
		ResourceID:    res.ResourceID(),
		UserID:        res.UserID(),
		Date:          res.Date().String(),
		StartTime:     slot.StartLabel(),
		EndTime:       slot.EndLabel(),
		StartMinute:   slot.Start,
		EndMinute:     slot.End,
		Status:        res.Status().String(),
		TotalPrice:    res.TotalPrice().StringFixed(2),
	}, now)
	if err != nil {
		return errs.Wrap(err, "encode reservation event")
	}

	topic := messaging.RoutingKey(messaging.EntityReservation, eventType)
	return tx.Outbox().Enqueue(ctx, topic, res.ID(), payload, now)
}

func (uc *reservationUseCaseImpl) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opts.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.opts.StoreTimeout)
}

// translateErr keeps already translated errors and maps repository kinds onto the shared sentinels.
func (uc *reservationUseCaseImpl) translateErr(err error) error {
	switch {
	case errs.Is(err, errs.ErrSlotConflict):
		return err
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.WithHint(errs.Mark(err, errs.ErrSlotConflict), conflictHint)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrTransientStore)
	default:
		return err
	}
}

func translateDomainErr(err error) error {
	switch {
	case errs.Is(err, reservation.ErrResourceUnavailable):
		return errs.Mark(err, errs.ErrResourceUnavailable)
	case errs.Is(err, reservation.ErrPastDate):
		return errs.Mark(err, errs.ErrPastDate)
	case errs.Is(err, reservation.ErrInvalidSlot), errs.Is(err, reservation.ErrInvalidDate):
		return errs.Mark(err, errs.ErrInvalidSlot)
	default:
		return err
	}
}

func calculateRequestHash(in CreateReservationInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
