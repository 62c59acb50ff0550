package commands

import (
	"context"
	"errors"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound    = errs.New("appointment not found")
	ErrAlreadyConfirmed       = errs.New("appointment confirmation already resolved")
	ErrNotAppointmentReceiver = errs.New("appointment belongs to another receiver")
	ErrInvalidConfirmation    = errs.New("confirmation status must be confirmed or problem")
)

type ConfirmAppointmentInput struct {
	ReceiverID    uuid.UUID
	AppointmentID uuid.UUID
	Status        appointment.ConfirmationStatus
	Notes         string
}

type ConfirmationCommands interface {
	ConfirmAppointment(ctx context.Context, in ConfirmAppointmentInput) (*queries.AppointmentView, error)
}

type confirmationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewConfirmationCommands(uow shared.UnitOfWork, clock clock.Clock) ConfirmationCommands {
	return &confirmationCommandsImpl{uow: uow, clock: clock}
}

// ConfirmAppointment settles the receiver's post-delivery verdict. Only the
// addressed receiver may resolve it, the transition happens once, and a
// confirmed delivery bumps the producer's streak inside the same
// transaction so the trigger cannot fire twice.
func (c *confirmationCommandsImpl) ConfirmAppointment(ctx context.Context, in ConfirmAppointmentInput) (*queries.AppointmentView, error) {
	if !in.Status.IsValid() || !in.Status.IsTerminal() {
		return nil, ErrInvalidConfirmation
	}

	now := c.clock.Now()
	var result *appointment.Appointment

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, err := tx.Appointments().FindByIDForUpdate(ctx, in.AppointmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if appt.ReceiverID() != in.ReceiverID {
			return ErrNotAppointmentReceiver
		}

		if err := appt.ResolveConfirmation(in.Status, appointment.NewNotes(in.Notes), now); err != nil {
			if errors.Is(err, appointment.ErrAlreadyConfirmed) {
				return ErrAlreadyConfirmed
			}
			return errs.Mark(err, ErrInvalidConfirmation)
		}

		if err := tx.Appointments().UpdateConfirmation(ctx, appt); err != nil {
			return err
		}

		if in.Status == appointment.ConfirmationConfirmed {
			if err := tx.Streaks().OnDeliveryConfirmed(ctx, appt.ProducerID(), now); err != nil {
				return err
			}
		}

		result = appt
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrAlreadyConfirmed),
			errors.Is(err, ErrNotAppointmentReceiver),
			errors.Is(err, ErrInvalidConfirmation):
			return nil, err
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return queries.NewAppointmentView(result), nil
}
