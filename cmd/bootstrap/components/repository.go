package components

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra/readstore"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra/repository"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		readstore.NewAvailabilityReadStore,
		readstore.NewAppointmentReadStore,
	),
)

// NewDBTX exposes the pool under the query interface the read stores take;
// the write side goes through the unit of work instead.
func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}
