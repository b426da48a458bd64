package pgstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewRow struct {
	Reservation
	ResourceName string
	ResourceType string
}

const reservationViewColumns = `r.id, r.resource_id, r.user_id, r.booking_date, r.start_time, r.end_time,
       r.start_minute, r.end_minute, r.duration, r.status, r.total_price::text, r.created_at, r.updated_at,
       res.name, res.type`

func scanReservationView(row interface{ Scan(...any) error }) (ReservationViewRow, error) {
	var i ReservationViewRow
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.BookingDate,
		&i.StartTime,
		&i.EndTime,
		&i.StartMinute,
		&i.EndMinute,
		&i.Duration,
		&i.Status,
		&i.TotalPrice,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ResourceName,
		&i.ResourceType,
	)
	return i, err
}

const getReservationViewByID = `-- name: GetReservationViewByID :one
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN resources res ON res.id = r.resource_id
WHERE r.id = $1
`

func (q *Queries) GetReservationViewByID(ctx context.Context, db DBTX, id uuid.UUID) (ReservationViewRow, error) {
	return scanReservationView(db.QueryRow(ctx, getReservationViewByID, id))
}

const listActiveReservationsByResourceDate = `-- name: ListActiveReservationsByResourceDate :many
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN resources res ON res.id = r.resource_id
WHERE r.resource_id = $1
  AND r.booking_date = $2
  AND r.status <> 'cancelled'
ORDER BY r.start_minute
`

type ListActiveReservationsByResourceDateParams struct {
	ResourceID  uuid.UUID
	BookingDate pgtype.Date
}

func (q *Queries) ListActiveReservationsByResourceDate(ctx context.Context, db DBTX, arg ListActiveReservationsByResourceDateParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listActiveReservationsByResourceDate, arg.ResourceID, arg.BookingDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationViewRow
	for rows.Next() {
		i, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationsByUserFirstPage = `-- name: ListReservationsByUserFirstPage :many
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN resources res ON res.id = r.resource_id
WHERE r.user_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2
`

type ListReservationsByUserFirstPageParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListReservationsByUserFirstPage(ctx context.Context, db DBTX, arg ListReservationsByUserFirstPageParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationsByUserFirstPage, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationViewRow
	for rows.Next() {
		i, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationsByUserKeyset = `-- name: ListReservationsByUserKeyset :many
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN resources res ON res.id = r.resource_id
WHERE r.user_id = $1
  AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4
`

type ListReservationsByUserKeysetParams struct {
	UserID    uuid.UUID
	CreatedAt pgtype.Timestamptz
	ID        uuid.UUID
	Limit     int32
}

func (q *Queries) ListReservationsByUserKeyset(ctx context.Context, db DBTX, arg ListReservationsByUserKeysetParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationsByUserKeyset, arg.UserID, arg.CreatedAt, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationViewRow
	for rows.Next() {
		i, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const lockResourceDay = `-- name: LockResourceDay :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))
`

// LockResourceDay serialises writers of one (resource, day) until the surrounding tx ends.
func (q *Queries) LockResourceDay(ctx context.Context, db DBTX, key string) error {
	_, err := db.Exec(ctx, lockResourceDay, key)
	return err
}

const listOverlappingReservations = `-- name: ListOverlappingReservations :many
SELECT id, start_minute, end_minute
FROM reservations
WHERE resource_id = $1
  AND booking_date = $2
  AND status <> 'cancelled'
  AND start_minute < $4
  AND end_minute > $3
ORDER BY start_minute
FOR UPDATE
`

type ListOverlappingReservationsParams struct {
	ResourceID  uuid.UUID
	BookingDate pgtype.Date
	StartMinute int32
	EndMinute   int32
}

type ListOverlappingReservationsRow struct {
	ID          uuid.UUID
	StartMinute int32
	EndMinute   int32
}

func (q *Queries) ListOverlappingReservations(ctx context.Context, db DBTX, arg ListOverlappingReservationsParams) ([]ListOverlappingReservationsRow, error) {
	rows, err := db.Query(ctx, listOverlappingReservations, arg.ResourceID, arg.BookingDate, arg.StartMinute, arg.EndMinute)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOverlappingReservationsRow
	for rows.Next() {
		var i ListOverlappingReservationsRow
		if err := rows.Scan(&i.ID, &i.StartMinute, &i.EndMinute); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    id, resource_id, user_id, booking_date, start_time, end_time,
    start_minute, end_minute, status, total_price, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $11
)
RETURNING id
`

type CreateReservationParams struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	UserID      uuid.UUID
	BookingDate pgtype.Date
	StartTime   string
	EndTime     string
	StartMinute int32
	EndMinute   int32
	Status      string
	TotalPrice  string
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.ResourceID,
		arg.UserID,
		arg.BookingDate,
		arg.StartTime,
		arg.EndTime,
		arg.StartMinute,
		arg.EndMinute,
		arg.Status,
		arg.TotalPrice,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getReservationForUpdate = `-- name: GetReservationForUpdate :one
SELECT id, resource_id, user_id, booking_date, start_time, end_time,
       start_minute, end_minute, duration, status, total_price::text, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	row := db.QueryRow(ctx, getReservationForUpdate, id)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.BookingDate,
		&i.StartTime,
		&i.EndTime,
		&i.StartMinute,
		&i.EndMinute,
		&i.Duration,
		&i.Status,
		&i.TotalPrice,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const cancelReservation = `-- name: CancelReservation :execrows
UPDATE reservations
SET status = 'cancelled', updated_at = $2
WHERE id = $1
  AND status <> 'cancelled'
`

type CancelReservationParams struct {
	ID        uuid.UUID
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) CancelReservation(ctx context.Context, db DBTX, arg CancelReservationParams) (int64, error) {
	result, err := db.Exec(ctx, cancelReservation, arg.ID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
