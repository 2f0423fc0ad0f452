package bootstrap

import (
	"log/slog"

	"rental-backoffice/internal/handler/middleware"
	"rental-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

// LoggerModule builds the process logger once; NewLogger also installs it as slog's default.
var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *middleware.Logger {
			return middleware.NewLogger(cfg.Log)
		},
		func(l *middleware.Logger) *slog.Logger {
			return l.GetSlogLogger()
		},
	),
)
