package components

import (
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase"
	"rental-backoffice/internal/usecase/automation"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseAutomationModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock) *booking.ReferenceGenerator {
		return booking.NewReferenceGenerator(clk)
	},
)

var usecaseAutomationModule = fx.Module("usecase/automation",
	fx.Provide(
		fx.Annotate(
			automation.NewDispatcher,
			fx.As(new(shared.RuleDispatcher)),
		),
		NewEmitter,
	),
)

// NewEmitter runs the emitter pool for the app's lifetime and exposes it as the event publisher.
func NewEmitter(lc fx.Lifecycle, dispatcher shared.RuleDispatcher, cfg config.Config) shared.EventPublisher {
	emitter := automation.NewEmitter(dispatcher, cfg.Events)
	lc.Append(fx.StartStopHook(emitter.Start, emitter.Stop))
	return emitter
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewPropertyUseCase,
		commands.NewGuestUseCase,
		commands.NewBookingUseCase,
		commands.NewTaskUseCase,
		commands.NewFinanceUseCase,
		commands.NewAutomationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewPropertyQueries,
		queries.NewGuestQueries,
		queries.NewBookingQueries,
		queries.NewTaskQueries,
		queries.NewFinanceQueries,
		queries.NewAutomationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
