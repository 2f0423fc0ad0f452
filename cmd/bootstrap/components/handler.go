package components

import (
	"rental-backoffice/internal/handler"
	"rental-backoffice/internal/handler/api"
	"rental-backoffice/internal/handler/middleware"
	"rental-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewPropertyHandler,
		api.NewGuestHandler,
		api.NewBookingHandler,
		api.NewArchiveHandler,
		api.NewTaskHandler,
		api.NewFinanceHandler,
		api.NewAutomationHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewLoginRateLimiter(cfg.Server)
		},
	),
	fx.Invoke(handler.NewRouter),
)
