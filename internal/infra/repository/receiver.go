package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/receiver"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReceiverRepository struct {
	db DBTX
}

func NewReceiverRepository(db DBTX) shared.ReceiverReadStore {
	return &ReceiverRepository{db: db}
}

const selectReceiverSQL = `
SELECT id, name, weekly_capacity_kg,
	street, address_number, neighborhood, state, city_id, postal_code,
	receiving_days, receiving_window
FROM receivers
WHERE id = $1`

func (r *ReceiverRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiver.Profile, error) {
	var (
		profile       receiver.Profile
		receivingDays []string
		windowJSON    []byte
	)
	err := r.db.QueryRow(ctx, selectReceiverSQL, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.WeeklyCapacityKg,
		&profile.Address.Street,
		&profile.Address.Number,
		&profile.Address.Neighborhood,
		&profile.Address.State,
		&profile.Address.CityID,
		&profile.Address.PostalCode,
		&receivingDays,
		&windowJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("receiver not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find receiver", err)
	}

	profile.ReceivingDays = make([]receiver.Weekday, len(receivingDays))
	for i, d := range receivingDays {
		profile.ReceivingDays[i] = receiver.Weekday(d)
	}

	if len(windowJSON) > 0 {
		if err := json.Unmarshal(windowJSON, &profile.ReceivingWindow); err != nil {
			return nil, infra.WrapRepoErr("failed to decode receiving window", err)
		}
	}

	return &profile, nil
}
