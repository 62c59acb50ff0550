package components

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/commands"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewTokenValidator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewConfirmationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewAppointmentQueries,
	),
)
