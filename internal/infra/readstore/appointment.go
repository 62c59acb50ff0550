package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra/repository"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppointmentReadStore struct {
	db repository.DBTX
}

func NewAppointmentReadStore(db repository.DBTX) queries.AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

const selectAppointmentViewSQL = `
SELECT id, producer_id, receiver_id, state, city_id, scheduled_date,
	volume_kg, status, client_request_id,
	confirmation_status, confirmation_at, confirmation_notes,
	created_at, updated_at
FROM appointments`

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := s.db.QueryRow(ctx, selectAppointmentViewSQL+` WHERE id = $1`, id)
	view, err := scanAppointmentView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return view, nil
}

func (s *AppointmentReadStore) FindByProducer(ctx context.Context, producerID uuid.UUID, r queries.DateRange) ([]*queries.AppointmentView, error) {
	sql, args := rangeQuery(selectAppointmentViewSQL+` WHERE producer_id = $1`, producerID, r)
	return s.list(ctx, sql+` ORDER BY scheduled_date DESC, created_at DESC`, args)
}

func (s *AppointmentReadStore) FindByReceiver(ctx context.Context, receiverID uuid.UUID, r queries.DateRange) ([]*queries.AppointmentView, error) {
	sql, args := rangeQuery(selectAppointmentViewSQL+` WHERE receiver_id = $1`, receiverID, r)
	return s.list(ctx, sql+` ORDER BY scheduled_date ASC, created_at ASC`, args)
}

func rangeQuery(base string, id uuid.UUID, r queries.DateRange) (string, []any) {
	args := []any{id}
	if r.From != nil {
		args = append(args, *r.From)
		base += ` AND scheduled_date >= $2`
	}
	if r.To != nil {
		args = append(args, *r.To)
		if r.From != nil {
			base += ` AND scheduled_date <= $3`
		} else {
			base += ` AND scheduled_date <= $2`
		}
	}
	return base, args
}

func (s *AppointmentReadStore) list(ctx context.Context, sql string, args []any) ([]*queries.AppointmentView, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	result := []*queries.AppointmentView{}
	for rows.Next() {
		view, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return result, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var (
		view          queries.AppointmentView
		scheduledDate time.Time
	)
	err := row.Scan(
		&view.ID, &view.ProducerID, &view.ReceiverID, &view.State, &view.CityID, &scheduledDate,
		&view.VolumeKg, &view.Status, &view.ClientRequestID,
		&view.ConfirmationStatus, &view.ConfirmationAt, &view.ConfirmationNotes,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Date = scheduledDate.Format("2006-01-02")
	return &view, nil
}
