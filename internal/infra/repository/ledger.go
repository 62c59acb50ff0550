package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/capacity"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Serialization of concurrent bookings for one receiver/week hangs on this
// repository: FindForUpdate locks the ledger row, and the primary key on
// (receiver_id, iso_year, iso_week) turns racing lazy creations into a
// unique violation the unit of work retries.
type LedgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) shared.LedgerRepository {
	return &LedgerRepository{db: db}
}

const selectLedgerForUpdateSQL = `
SELECT receiver_id, iso_year, iso_week, week_start, base_capacity_kg, booked_kg
FROM weekly_ledgers
WHERE receiver_id = $1 AND iso_year = $2 AND iso_week = $3
FOR UPDATE`

const selectLedgerAppointmentsSQL = `
SELECT appointment_id
FROM ledger_appointments
WHERE receiver_id = $1 AND iso_year = $2 AND iso_week = $3
ORDER BY appointment_id`

func (r *LedgerRepository) FindForUpdate(ctx context.Context, receiverID uuid.UUID, wk week.Info) (*capacity.Ledger, error) {
	var (
		recID          uuid.UUID
		year, number   int
		weekStart      time.Time
		baseCapacityKg float64
		bookedKg       float64
	)
	err := r.db.QueryRow(ctx, selectLedgerForUpdateSQL, receiverID, wk.Year, wk.Number).
		Scan(&recID, &year, &number, &weekStart, &baseCapacityKg, &bookedKg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("ledger not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read weekly ledger", err)
	}

	rows, err := r.db.Query(ctx, selectLedgerAppointmentsSQL, receiverID, wk.Year, wk.Number)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read ledger appointments", err)
	}
	defer rows.Close()

	var appointmentIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ledger appointment id", err)
		}
		appointmentIDs = append(appointmentIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ledger appointments", err)
	}

	return capacity.Reconstruct(recID, year, number, weekStart, baseCapacityKg, bookedKg, appointmentIDs), nil
}

const insertLedgerSQL = `
INSERT INTO weekly_ledgers (receiver_id, iso_year, iso_week, week_start, base_capacity_kg, booked_kg)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertLedgerAppointmentSQL = `
INSERT INTO ledger_appointments (receiver_id, iso_year, iso_week, appointment_id)
VALUES ($1, $2, $3, $4)`

func (r *LedgerRepository) Insert(ctx context.Context, ledger *capacity.Ledger) error {
	_, err := r.db.Exec(ctx, insertLedgerSQL,
		ledger.ReceiverID(),
		ledger.Year(),
		ledger.WeekNumber(),
		ledger.WeekStart(),
		ledger.BaseCapacityKg(),
		ledger.BookedKg(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race for this week; caller retries and
			// finds the committed row.
			return infra.WrapRepoErr("ledger already created", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert weekly ledger", err)
	}

	for _, id := range ledger.AppointmentIDs() {
		if _, err := r.db.Exec(ctx, insertLedgerAppointmentSQL,
			ledger.ReceiverID(), ledger.Year(), ledger.WeekNumber(), id,
		); err != nil {
			return infra.WrapRepoErr("failed to insert ledger appointment", err)
		}
	}
	return nil
}

const updateLedgerSQL = `
UPDATE weekly_ledgers
SET booked_kg = $4
WHERE receiver_id = $1 AND iso_year = $2 AND iso_week = $3`

func (r *LedgerRepository) Append(ctx context.Context, ledger *capacity.Ledger, appointmentID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, updateLedgerSQL,
		ledger.ReceiverID(), ledger.Year(), ledger.WeekNumber(), ledger.BookedKg(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update weekly ledger", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("ledger not found", nil, infra.KindNotFound)
	}

	if _, err := r.db.Exec(ctx, insertLedgerAppointmentSQL,
		ledger.ReceiverID(), ledger.Year(), ledger.WeekNumber(), appointmentID,
	); err != nil {
		return infra.WrapRepoErr("failed to insert ledger appointment", err)
	}
	return nil
}

const pgErrCodeUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
