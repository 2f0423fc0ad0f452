package bootstrap

import (
	"rental-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule exposes the whole config plus the lifecycle group that commands take directly.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.LifecycleConfig { return cfg.Lifecycle },
	),
)
