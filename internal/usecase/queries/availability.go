package queries

import (
	"context"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"

	"github.com/google/uuid"
)

// ReceiverRow is what the read store returns per receiver in a region.
type ReceiverRow struct {
	ID               uuid.UUID
	Name             string
	State            string
	CityID           string
	WeeklyCapacityKg float64
}

// LedgerTotals is the slice of a ledger row availability needs.
type LedgerTotals struct {
	BaseCapacityKg float64
	BookedKg       float64
}

type AvailabilityReadStore interface {
	ListReceiversByRegion(ctx context.Context, state, cityID string) ([]ReceiverRow, error)
	// LedgerTotalsForWeek returns totals keyed by receiver id; receivers
	// with no ledger that week are simply absent from the map.
	LedgerTotalsForWeek(ctx context.Context, receiverIDs []uuid.UUID, year, weekNumber int) (map[uuid.UUID]LedgerTotals, error)
}

type AvailabilityQueries interface {
	ListByRegion(ctx context.Context, state, cityID string) ([]*ReceiverAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store AvailabilityReadStore, clock clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, clock: clock}
}

// ListByRegion reports the current week's room per receiver. When a ledger
// exists the displayed capacity is its frozen base, matching what the
// booking engine will actually enforce; otherwise the live profile value.
func (q *availabilityQueriesImpl) ListByRegion(ctx context.Context, state, cityID string) ([]*ReceiverAvailabilityView, error) {
	receivers, err := q.store.ListReceiversByRegion(ctx, state, cityID)
	if err != nil {
		return nil, err
	}
	if len(receivers) == 0 {
		return []*ReceiverAvailabilityView{}, nil
	}

	ids := make([]uuid.UUID, len(receivers))
	for i, r := range receivers {
		ids[i] = r.ID
	}

	wk := week.At(q.clock.Now())
	totals, err := q.store.LedgerTotalsForWeek(ctx, ids, wk.Year, wk.Number)
	if err != nil {
		return nil, err
	}

	views := make([]*ReceiverAvailabilityView, len(receivers))
	for i, r := range receivers {
		capacityKg := r.WeeklyCapacityKg
		bookedKg := 0.0
		if t, ok := totals[r.ID]; ok {
			capacityKg = t.BaseCapacityKg
			bookedKg = t.BookedKg
		}
		availableKg := capacityKg - bookedKg
		if availableKg < 0 {
			availableKg = 0
		}

		views[i] = &ReceiverAvailabilityView{
			ReceiverID:        r.ID,
			Name:              r.Name,
			State:             r.State,
			CityID:            r.CityID,
			WeeklyCapacityKg:  capacityKg,
			WeeklyBookedKg:    bookedKg,
			WeeklyAvailableKg: availableKg,
		}
	}
	return views, nil
}
