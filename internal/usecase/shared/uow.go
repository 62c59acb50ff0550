// Package shared defines the ports the command side of the usecase layer
// needs from persistence. Implementations live under internal/infra; tests
// substitute in-memory fakes.
package shared

import (
	"context"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/capacity"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/receiver"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrConflictRetryExhausted marks a transaction that kept hitting retryable
// conflicts until the retry budget ran out.
var ErrConflictRetryExhausted = errs.New("transaction failed after max retries")

// UnitOfWork runs fn inside one atomic transaction. The closure is re-run
// from the top on every conflict retry, so any validation inside it always
// sees committed state, never a stale first read.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the transactional repositories bound to one transaction.
type Tx interface {
	Appointments() AppointmentRepository
	Ledgers() LedgerRepository
	Receivers() ReceiverReadStore
	Streaks() StreakNotifier
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *appointment.Appointment) error
	// FindByClientRequestID backs idempotent replay; NOT_FOUND kind when
	// the key was never committed.
	FindByClientRequestID(ctx context.Context, producerID, clientRequestID uuid.UUID) (*appointment.Appointment, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateConfirmation(ctx context.Context, appt *appointment.Appointment) error
}

type LedgerRepository interface {
	// FindForUpdate locks the ledger row for the rest of the transaction;
	// NOT_FOUND kind when no booking ever touched that receiver/week.
	FindForUpdate(ctx context.Context, receiverID uuid.UUID, wk week.Info) (*capacity.Ledger, error)
	Insert(ctx context.Context, ledger *capacity.Ledger) error
	// Append persists a Book() mutation: the new running total plus the
	// appointment's membership in the week.
	Append(ctx context.Context, ledger *capacity.Ledger, appointmentID uuid.UUID) error
}

type ReceiverReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*receiver.Profile, error)
}

// StreakNotifier is the producer-streak collaborator, fired exactly once
// per confirmed delivery.
type StreakNotifier interface {
	OnDeliveryConfirmed(ctx context.Context, producerID uuid.UUID, confirmedAt time.Time) error
}
