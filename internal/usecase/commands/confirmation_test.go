//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var confirmationNow = time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC)

func newConfirmationHarness(t *testing.T) (commands.ConfirmationCommands, *fakeUoW, *appointment.Appointment) {
	t.Helper()

	region, err := appointment.NewRegion("SP", "3550308")
	require.NoError(t, err)
	date, err := appointment.ParseScheduledDate("2025-06-11")
	require.NoError(t, err)

	appt, err := appointment.NewConfirmed(uuid.New(), uuid.New(), region, date, 25, nil, confirmationNow.Add(-48*time.Hour))
	require.NoError(t, err)

	uow := newFakeUoW()
	uow.tx.appointments[appt.ID()] = appt

	return commands.NewConfirmationCommands(uow, clock.NewFixedClock(confirmationNow)), uow, appt
}

func TestConfirmAppointment_Confirmed(t *testing.T) {
	confirmation, uow, appt := newConfirmationHarness(t)

	view, err := confirmation.ConfirmAppointment(context.Background(), commands.ConfirmAppointmentInput{
		ReceiverID:    appt.ReceiverID(),
		AppointmentID: appt.ID(),
		Status:        appointment.ConfirmationConfirmed,
		Notes:         "delivered on time",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", view.ConfirmationStatus)
	require.NotNil(t, view.ConfirmationAt)
	assert.Equal(t, confirmationNow, *view.ConfirmationAt)
	require.NotNil(t, view.ConfirmationNotes)
	assert.Equal(t, "delivered on time", *view.ConfirmationNotes)

	// The streak collaborator fired exactly once, for the producer.
	require.Len(t, uow.tx.streaks.calls, 1)
	assert.Equal(t, appt.ProducerID(), uow.tx.streaks.calls[0].producerID)
	assert.Equal(t, confirmationNow, uow.tx.streaks.calls[0].confirmedAt)
}

func TestConfirmAppointment_ProblemSkipsStreak(t *testing.T) {
	confirmation, uow, appt := newConfirmationHarness(t)

	view, err := confirmation.ConfirmAppointment(context.Background(), commands.ConfirmAppointmentInput{
		ReceiverID:    appt.ReceiverID(),
		AppointmentID: appt.ID(),
		Status:        appointment.ConfirmationProblem,
		Notes:         "half the declared volume",
	})
	require.NoError(t, err)

	assert.Equal(t, "problem", view.ConfirmationStatus)
	assert.Empty(t, uow.tx.streaks.calls)
}

func TestConfirmAppointment_ResolvesAtMostOnce(t *testing.T) {
	confirmation, uow, appt := newConfirmationHarness(t)
	ctx := context.Background()

	in := commands.ConfirmAppointmentInput{
		ReceiverID:    appt.ReceiverID(),
		AppointmentID: appt.ID(),
		Status:        appointment.ConfirmationConfirmed,
	}

	_, err := confirmation.ConfirmAppointment(ctx, in)
	require.NoError(t, err)

	in.Status = appointment.ConfirmationProblem
	_, err = confirmation.ConfirmAppointment(ctx, in)
	assert.ErrorIs(t, err, commands.ErrAlreadyConfirmed)

	// No second streak bump either.
	assert.Len(t, uow.tx.streaks.calls, 1)
}

func TestConfirmAppointment_WrongReceiver(t *testing.T) {
	confirmation, uow, appt := newConfirmationHarness(t)

	_, err := confirmation.ConfirmAppointment(context.Background(), commands.ConfirmAppointmentInput{
		ReceiverID:    uuid.New(),
		AppointmentID: appt.ID(),
		Status:        appointment.ConfirmationConfirmed,
	})
	assert.ErrorIs(t, err, commands.ErrNotAppointmentReceiver)
	assert.Empty(t, uow.tx.streaks.calls)
	assert.Equal(t, appointment.ConfirmationPending, appt.ConfirmationStatus())
}

func TestConfirmAppointment_NotFound(t *testing.T) {
	confirmation, _, appt := newConfirmationHarness(t)

	_, err := confirmation.ConfirmAppointment(context.Background(), commands.ConfirmAppointmentInput{
		ReceiverID:    appt.ReceiverID(),
		AppointmentID: uuid.New(),
		Status:        appointment.ConfirmationConfirmed,
	})
	assert.ErrorIs(t, err, commands.ErrAppointmentNotFound)
}

func TestConfirmAppointment_RejectsNonTerminalTarget(t *testing.T) {
	confirmation, _, appt := newConfirmationHarness(t)

	for _, status := range []appointment.ConfirmationStatus{
		appointment.ConfirmationPending,
		appointment.ConfirmationStatus("maybe"),
	} {
		_, err := confirmation.ConfirmAppointment(context.Background(), commands.ConfirmAppointmentInput{
			ReceiverID:    appt.ReceiverID(),
			AppointmentID: appt.ID(),
			Status:        status,
		})
		assert.ErrorIs(t, err, commands.ErrInvalidConfirmation)
	}
}
