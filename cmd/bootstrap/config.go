package bootstrap

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
