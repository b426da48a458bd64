// Package pgstore holds the SQL statements of the service and their row types. Statements are
// written in sqlc's shape (one method per statement, the connection passed per call) so the
// same Queries value serves pool, transaction and read-only transaction callers.
package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New() *Queries {
	return &Queries{}
}

type Queries struct{}
