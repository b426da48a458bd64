package components

import (
	"court-booking/internal/infra/pgstore"
	"court-booking/internal/infra/readstore"
	"court-booking/internal/infra/uow"
	"court-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write-side repositories are built per transaction inside the unit of work; only the
// read stores and the unit of work itself live in the container.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	fx.Provide(uow.NewPostgresUoW),
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Resource
		fx.Annotate(
			func(q *pgstore.Queries, db pgstore.DBTX) *readstore.ResourceReadStore {
				return readstore.NewResourceReadStore(q, db)
			},
			fx.As(new(queries.ResourceStore)),
		),
		// Reservation
		fx.Annotate(
			func(q *pgstore.Queries, db pgstore.DBTX) *readstore.ReservationReadStore {
				return readstore.NewReservationReadStore(q, db)
			},
			fx.As(new(queries.ReservationStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *pgstore.Queries {
	return pgstore.New()
}

func NewDBTX(pool *pgxpool.Pool) pgstore.DBTX {
	return pool
}
