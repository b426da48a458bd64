package infra

import (
	"context"
	"errors"
	"log/slog"

	"court-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr tags err with a kind. Without an explicit kind the kind is derived from the
// Postgres error code or the context state.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := Classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	switch k {
	case KindDBFailure, KindUnavailable:
		slog.Error("repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	default:
		slog.Debug("repository error: "+msg, slog.String("kind", string(k)))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func Classify(err error) RepositoryErrorKind {
	if err == nil {
		return KindDBFailure
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return KindUnavailable
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return KindDuplicateKey
		case pgErrExclusionViolation:
			return KindConflict
		case pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErrQueryCanceled, pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections:
			return KindUnavailable
		}
	}
	return KindDBFailure
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrExclusionViolation  = "23P01"
	pgErrQueryCanceled       = "57014"
	pgErrAdminShutdown       = "57P01"
	pgErrCannotConnectNow    = "57P03"
	pgErrTooManyConnections  = "53300"
)

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindConflict           RepositoryErrorKind = "CONFLICT"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
)
