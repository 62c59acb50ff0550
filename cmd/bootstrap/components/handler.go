package components

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/api"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
		api.NewAvailabilityHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
