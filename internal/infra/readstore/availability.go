// Package readstore holds the query-side Postgres stores. They serve
// display paths only; nothing here takes locks or writes.
package readstore

import (
	"context"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra/repository"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityReadStore struct {
	db repository.DBTX
}

func NewAvailabilityReadStore(db repository.DBTX) queries.AvailabilityReadStore {
	return &AvailabilityReadStore{db: db}
}

const selectReceiversByRegionSQL = `
SELECT id, name, state, city_id, weekly_capacity_kg
FROM receivers
WHERE state = $1 AND city_id = $2
ORDER BY name, id`

func (s *AvailabilityReadStore) ListReceiversByRegion(ctx context.Context, state, cityID string) ([]queries.ReceiverRow, error) {
	rows, err := s.db.Query(ctx, selectReceiversByRegionSQL, state, cityID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list receivers by region", err)
	}
	defer rows.Close()

	var result []queries.ReceiverRow
	for rows.Next() {
		var r queries.ReceiverRow
		if err := rows.Scan(&r.ID, &r.Name, &r.State, &r.CityID, &r.WeeklyCapacityKg); err != nil {
			return nil, infra.WrapRepoErr("failed to scan receiver row", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate receivers", err)
	}
	return result, nil
}

const selectLedgerTotalsSQL = `
SELECT receiver_id, base_capacity_kg, booked_kg
FROM weekly_ledgers
WHERE receiver_id = ANY($1) AND iso_year = $2 AND iso_week = $3`

func (s *AvailabilityReadStore) LedgerTotalsForWeek(ctx context.Context, receiverIDs []uuid.UUID, year, weekNumber int) (map[uuid.UUID]queries.LedgerTotals, error) {
	rows, err := s.db.Query(ctx, selectLedgerTotalsSQL, receiverIDs, year, weekNumber)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read ledger totals", err)
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]queries.LedgerTotals)
	for rows.Next() {
		var (
			id uuid.UUID
			t  queries.LedgerTotals
		)
		if err := rows.Scan(&id, &t.BaseCapacityKg, &t.BookedKg); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ledger totals", err)
		}
		totals[id] = t
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ledger totals", err)
	}
	return totals, nil
}
