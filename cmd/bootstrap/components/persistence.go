package components

import (
	"rental-backoffice/internal/infra/readstore"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/infra/uow"
	"rental-backoffice/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Write repositories are built per transaction inside the unit of work, so
// only the read side and the UoW itself are provided here.
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
		// Property
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.PropertyReadQueries)),
		),
		fx.Annotate(
			readstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Guest
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.GuestReadQueries)),
		),
		fx.Annotate(
			readstore.NewGuestReadStore,
			fx.As(new(queries.GuestReadStore)),
		),
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingReadQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Tasks
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.TaskReadQueries)),
		),
		fx.Annotate(
			readstore.NewTaskReadStore,
			fx.As(new(queries.TaskReadStore)),
		),
		// Finance
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.FinanceReadQueries)),
		),
		fx.Annotate(
			readstore.NewFinanceReadStore,
			fx.As(new(queries.FinanceReadStore)),
		),
		// Automation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AutomationReadQueries)),
		),
		fx.Annotate(
			readstore.NewAutomationReadStore,
			fx.As(new(queries.AutomationReadStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
