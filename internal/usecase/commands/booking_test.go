//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/receiver"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/clock"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newBookingHarness(t *testing.T, weeklyCapacityKg float64) (commands.BookingCommands, *fakeUoW, *receiver.Profile) {
	t.Helper()

	profile := &receiver.Profile{
		ID:               uuid.New(),
		Name:             "Composta Vila Madalena",
		WeeklyCapacityKg: weeklyCapacityKg,
		Address: receiver.Address{
			State:  "SP",
			CityID: "3550308",
		},
	}

	uow := newFakeUoW()
	uow.tx.addReceiver(profile)

	return commands.NewBookingCommands(uow, clock.NewFixedClock(bookingNow)), uow, profile
}

func bookingInput(profile *receiver.Profile, volumeKg float64) commands.CreateAppointmentInput {
	date, _ := appointment.ParseScheduledDate("2025-06-11")
	return commands.CreateAppointmentInput{
		ProducerID: uuid.New(),
		ReceiverID: profile.ID,
		State:      "SP",
		CityID:     "3550308",
		Date:       date,
		VolumeKg:   volumeKg,
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	booking, uow, profile := newBookingHarness(t, 500)

	result, err := booking.CreateAppointment(context.Background(), bookingInput(profile, 120))
	require.NoError(t, err)
	require.NotNil(t, result.Appointment)

	assert.False(t, result.IsReplayed)
	assert.Equal(t, profile.ID, result.Appointment.ReceiverID)
	assert.Equal(t, "confirmed", result.Appointment.Status)
	assert.Equal(t, "pending", result.Appointment.ConfirmationStatus)
	assert.Equal(t, "2025-06-11", result.Appointment.Date)

	wk := week.At(bookingNow)
	ledger := uow.tx.ledgers[wk.Key(profile.ID)]
	require.NotNil(t, ledger)
	assert.Equal(t, 500.0, ledger.BaseCapacityKg())
	assert.Equal(t, 120.0, ledger.BookedKg())
	assert.Equal(t, []uuid.UUID{result.Appointment.ID}, ledger.AppointmentIDs())
}

func TestCreateAppointment_ReceiverNotFound(t *testing.T) {
	booking, _, profile := newBookingHarness(t, 500)

	in := bookingInput(profile, 10)
	in.ReceiverID = uuid.New()

	_, err := booking.CreateAppointment(context.Background(), in)
	assert.ErrorIs(t, err, commands.ErrReceiverNotFound)
}

func TestCreateAppointment_InputValidation(t *testing.T) {
	booking, _, profile := newBookingHarness(t, 500)

	t.Run("non-positive volume", func(t *testing.T) {
		_, err := booking.CreateAppointment(context.Background(), bookingInput(profile, 0))
		assert.ErrorIs(t, err, commands.ErrInvalidVolume)
	})

	t.Run("empty region", func(t *testing.T) {
		in := bookingInput(profile, 10)
		in.State = ""
		_, err := booking.CreateAppointment(context.Background(), in)
		assert.ErrorIs(t, err, commands.ErrInvalidRegion)
	})

	t.Run("zero date", func(t *testing.T) {
		in := bookingInput(profile, 10)
		in.Date = appointment.ScheduledDate{}
		_, err := booking.CreateAppointment(context.Background(), in)
		assert.ErrorIs(t, err, commands.ErrInvalidDate)
	})
}

func TestCreateAppointment_CapacitySequence(t *testing.T) {
	booking, _, profile := newBookingHarness(t, 50)
	ctx := context.Background()

	// First producer takes 30 of 50.
	first, err := booking.CreateAppointment(ctx, bookingInput(profile, 30))
	require.NoError(t, err)
	require.NotNil(t, first.Appointment)

	// 25 no longer fits.
	_, err = booking.CreateAppointment(ctx, bookingInput(profile, 25))
	assert.ErrorIs(t, err, commands.ErrCapacityExceeded)

	// 20 fills the week exactly.
	second, err := booking.CreateAppointment(ctx, bookingInput(profile, 20))
	require.NoError(t, err)
	require.NotNil(t, second.Appointment)

	// Nothing fits anymore, however small.
	_, err = booking.CreateAppointment(ctx, bookingInput(profile, 0.01))
	assert.ErrorIs(t, err, commands.ErrCapacityExceeded)
}

func TestCreateAppointment_ConcurrentBookingsNeverOversell(t *testing.T) {
	booking, uow, profile := newBookingHarness(t, 50)

	const workers = 20
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := booking.CreateAppointment(context.Background(), bookingInput(profile, 10))
			results[slot] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, commands.ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 5, succeeded)

	wk := week.At(bookingNow)
	ledger := uow.tx.ledgers[wk.Key(profile.ID)]
	require.NotNil(t, ledger)
	assert.Equal(t, 50.0, ledger.BookedKg())
	assert.Len(t, ledger.AppointmentIDs(), 5)
	assert.Len(t, uow.tx.appointments, 5)
}

func TestCreateAppointment_IdempotentReplay(t *testing.T) {
	booking, uow, profile := newBookingHarness(t, 100)
	ctx := context.Background()

	clientRequestID := uuid.New()
	in := bookingInput(profile, 40)
	in.ClientRequestID = &clientRequestID

	first, err := booking.CreateAppointment(ctx, in)
	require.NoError(t, err)
	assert.False(t, first.IsReplayed)

	replay, err := booking.CreateAppointment(ctx, in)
	require.NoError(t, err)
	assert.True(t, replay.IsReplayed)
	assert.Equal(t, first.Appointment.ID, replay.Appointment.ID)

	// One appointment, one capacity increment.
	assert.Len(t, uow.tx.appointments, 1)
	wk := week.At(bookingNow)
	assert.Equal(t, 40.0, uow.tx.ledgers[wk.Key(profile.ID)].BookedKg())
}

func TestCreateAppointment_BaseCapacityFrozenForTheWeek(t *testing.T) {
	booking, uow, profile := newBookingHarness(t, 100)
	ctx := context.Background()

	_, err := booking.CreateAppointment(ctx, bookingInput(profile, 60))
	require.NoError(t, err)

	// Mid-week profile edit; the open ledger keeps its snapshot.
	profile.WeeklyCapacityKg = 1000

	_, err = booking.CreateAppointment(ctx, bookingInput(profile, 50))
	assert.ErrorIs(t, err, commands.ErrCapacityExceeded)

	wk := week.At(bookingNow)
	assert.Equal(t, 100.0, uow.tx.ledgers[wk.Key(profile.ID)].BaseCapacityKg())
}
