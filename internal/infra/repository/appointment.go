package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) shared.AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const insertAppointmentSQL = `
INSERT INTO appointments (
	id, producer_id, receiver_id, state, city_id, scheduled_date,
	volume_kg, status, client_request_id,
	confirmation_status, confirmation_at, confirmation_notes,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (r *AppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, insertAppointmentSQL,
		appt.ID(),
		appt.ProducerID(),
		appt.ReceiverID(),
		appt.Region().State(),
		appt.Region().CityID(),
		appt.ScheduledDate().Time(),
		appt.VolumeKg(),
		appt.Status().String(),
		appt.ClientRequestID(),
		appt.ConfirmationStatus().String(),
		appt.ConfirmationAt(),
		appt.ConfirmationNotes(),
		appt.CreatedAt(),
		appt.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("appointment already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert appointment", err)
	}
	return nil
}

const selectAppointmentSQL = `
SELECT id, producer_id, receiver_id, state, city_id, scheduled_date,
	volume_kg, status, client_request_id,
	confirmation_status, confirmation_at, confirmation_notes,
	created_at, updated_at
FROM appointments`

func (r *AppointmentRepository) FindByClientRequestID(ctx context.Context, producerID, clientRequestID uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx,
		selectAppointmentSQL+` WHERE producer_id = $1 AND client_request_id = $2`,
		producerID, clientRequestID,
	)
	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found for client request id", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by client request id", err)
	}
	return appt, nil
}

func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx, selectAppointmentSQL+` WHERE id = $1 FOR UPDATE`, id)
	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by id", err)
	}
	return appt, nil
}

const updateConfirmationSQL = `
UPDATE appointments
SET confirmation_status = $2, confirmation_at = $3, confirmation_notes = $4, updated_at = $5
WHERE id = $1`

func (r *AppointmentRepository) UpdateConfirmation(ctx context.Context, appt *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx, updateConfirmationSQL,
		appt.ID(),
		appt.ConfirmationStatus().String(),
		appt.ConfirmationAt(),
		appt.ConfirmationNotes(),
		appt.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment confirmation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, producerID, receiverID uuid.UUID
		state, cityID              string
		scheduledDate              time.Time
		volumeKg                   float64
		status                     string
		clientRequestID            *uuid.UUID
		confirmationStatus         string
		confirmationAt             *time.Time
		confirmationNotes          *string
		createdAt, updatedAt       time.Time
	)

	err := row.Scan(
		&id, &producerID, &receiverID, &state, &cityID, &scheduledDate,
		&volumeKg, &status, &clientRequestID,
		&confirmationStatus, &confirmationAt, &confirmationNotes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	region, err := appointment.NewRegion(state, cityID)
	if err != nil {
		return nil, err
	}

	return appointment.Reconstruct(
		id, producerID, receiverID,
		region,
		appointment.NewScheduledDate(scheduledDate),
		volumeKg,
		appointment.Status(status),
		clientRequestID,
		appointment.ConfirmationStatus(confirmationStatus),
		confirmationAt,
		confirmationNotes,
		createdAt, updatedAt,
	), nil
}
