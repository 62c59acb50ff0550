package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/capacity"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReceiverNotFound        = errs.New("receiver not found")
	ErrCapacityExceeded        = errs.New("volume exceeds the receiver's available weekly capacity")
	ErrTransactionConflict     = errs.New("booking conflicted with concurrent requests")
	ErrInvalidVolume           = errs.New("volume must be positive")
	ErrInvalidRegion           = errs.New("invalid region")
	ErrInvalidDate             = errs.New("invalid scheduled date")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateAppointmentInput struct {
	ProducerID uuid.UUID
	ReceiverID uuid.UUID
	State      string
	CityID     string
	Date       appointment.ScheduledDate
	VolumeKg   float64
	// ClientRequestID is the replay idempotency key; nil for plain online
	// bookings.
	ClientRequestID *uuid.UUID
}

type CreateAppointmentResult struct {
	Appointment *queries.AppointmentView
	// IsReplayed is true when the client request id had already been
	// committed and the stored appointment was returned instead.
	IsReplayed bool
}

type BookingCommands interface {
	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*CreateAppointmentResult, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clock clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clock}
}

// CreateAppointment runs the read-validate-write sequence of a booking as
// one transaction. The unit of work re-runs the closure on conflict, and
// the ledger is re-read under lock on each attempt, so the capacity check
// always holds against committed state.
func (b *bookingCommandsImpl) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*CreateAppointmentResult, error) {
	if in.VolumeKg <= 0 {
		return nil, ErrInvalidVolume
	}
	region, err := appointment.NewRegion(in.State, in.CityID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRegion)
	}
	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}

	wk := week.At(in.Date.Time())

	var (
		result   *appointment.Appointment
		replayed bool
	)
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		replayed = false

		if in.ClientRequestID != nil {
			existing, err := tx.Appointments().FindByClientRequestID(ctx, in.ProducerID, *in.ClientRequestID)
			if err == nil {
				result = existing
				replayed = true
				return nil
			}
			if !infra.IsKind(err, infra.KindNotFound) {
				return err
			}
		}

		profile, err := tx.Receivers().FindByID(ctx, in.ReceiverID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReceiverNotFound
			}
			return err
		}

		ledger, err := tx.Ledgers().FindForUpdate(ctx, in.ReceiverID, wk)
		existed := true
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return err
			}
			existed = false
			ledger, err = capacity.NewLedger(in.ReceiverID, wk, profile.WeeklyCapacityKg)
			if err != nil {
				return err
			}
		}

		appt, err := appointment.NewConfirmed(
			in.ProducerID,
			in.ReceiverID,
			region,
			in.Date,
			in.VolumeKg,
			in.ClientRequestID,
			b.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err := ledger.Book(appt.ID(), in.VolumeKg); err != nil {
			if errors.Is(err, capacity.ErrCapacityExceeded) {
				return ErrCapacityExceeded
			}
			return err
		}

		if err := tx.Appointments().Create(ctx, appt); err != nil {
			return err
		}
		if existed {
			if err := tx.Ledgers().Append(ctx, ledger, appt.ID()); err != nil {
				return err
			}
		} else {
			if err := tx.Ledgers().Insert(ctx, ledger); err != nil {
				return err
			}
		}

		result = appt
		return nil
	})
	if err != nil {
		return nil, b.mapBookingError(err)
	}

	view := queries.NewAppointmentView(result)
	return &CreateAppointmentResult{Appointment: view, IsReplayed: replayed}, nil
}

func (b *bookingCommandsImpl) mapBookingError(err error) error {
	switch {
	case errors.Is(err, ErrReceiverNotFound),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, capacity.ErrInvalidVolume),
		errors.Is(err, appointment.ErrInvalidVolume):
		return err
	case errors.Is(err, shared.ErrConflictRetryExhausted):
		return errs.Mark(err, ErrTransactionConflict)
	default:
		slog.Error("booking transaction failed", "error", err.Error())
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
