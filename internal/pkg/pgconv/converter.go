package pgconv

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid pgtype.Date value")

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// DateToPgtype drops the clock part; a booking date is a calendar day.
func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) (time.Time, error) {
	if !pd.Valid || pd.InfinityModifier != pgtype.Finite {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(pd.Time.Year(), pd.Time.Month(), pd.Time.Day(), 0, 0, 0, 0, time.UTC), nil
}

func DateStringFromPgtype(pd pgtype.Date) string {
	d, err := DateFromPgtype(pd)
	if err != nil {
		return ""
	}
	return d.Format(DateLayout)
}

// Money columns travel as text so NUMERIC precision is never squeezed through float64.
func DecimalFromText(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func DecimalToText(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsNoRows checks if the error is a "no rows" error from pgx
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
