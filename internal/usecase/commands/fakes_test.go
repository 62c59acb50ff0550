//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/capacity"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/receiver"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/infra"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW serializes closures with one mutex, standing in for the row lock
// the real unit of work takes on the ledger. Repositories write straight to
// the shared maps; the booking closure validates before it writes, so no
// rollback emulation is needed for these tests.
type fakeUoW struct {
	mu sync.Mutex
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		tx: &fakeTx{
			appointments:  make(map[uuid.UUID]*appointment.Appointment),
			byClientReqID: make(map[string]uuid.UUID),
			ledgers:       make(map[string]*capacity.Ledger),
			receivers:     make(map[uuid.UUID]*receiver.Profile),
			streaks:       &fakeStreakNotifier{},
		},
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, u.tx)
}

type fakeTx struct {
	appointments  map[uuid.UUID]*appointment.Appointment
	byClientReqID map[string]uuid.UUID
	ledgers       map[string]*capacity.Ledger
	receivers     map[uuid.UUID]*receiver.Profile
	streaks       *fakeStreakNotifier
}

func (t *fakeTx) Appointments() shared.AppointmentRepository { return (*fakeAppointmentRepo)(t) }
func (t *fakeTx) Ledgers() shared.LedgerRepository           { return (*fakeLedgerRepo)(t) }
func (t *fakeTx) Receivers() shared.ReceiverReadStore        { return (*fakeReceiverStore)(t) }
func (t *fakeTx) Streaks() shared.StreakNotifier             { return t.streaks }

func (t *fakeTx) addReceiver(p *receiver.Profile) {
	t.receivers[p.ID] = p
}

func clientReqKey(producerID, clientRequestID uuid.UUID) string {
	return producerID.String() + "/" + clientRequestID.String()
}

type fakeAppointmentRepo fakeTx

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *appointment.Appointment) error {
	if appt.ClientRequestID() != nil {
		key := clientReqKey(appt.ProducerID(), *appt.ClientRequestID())
		if _, exists := r.byClientReqID[key]; exists {
			return infra.WrapRepoErr("appointment already exists", nil, infra.KindDuplicateKey)
		}
		r.byClientReqID[key] = appt.ID()
	}
	r.appointments[appt.ID()] = appt
	return nil
}

func (r *fakeAppointmentRepo) FindByClientRequestID(_ context.Context, producerID, clientRequestID uuid.UUID) (*appointment.Appointment, error) {
	id, ok := r.byClientReqID[clientReqKey(producerID, clientRequestID)]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found for client request id", nil, infra.KindNotFound)
	}
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return appt, nil
}

func (r *fakeAppointmentRepo) UpdateConfirmation(_ context.Context, appt *appointment.Appointment) error {
	if _, ok := r.appointments[appt.ID()]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	r.appointments[appt.ID()] = appt
	return nil
}

type fakeLedgerRepo fakeTx

// FindForUpdate hands back a copy so a Book() that never commits through
// Insert or Append leaves the stored ledger untouched, as with real rows.
func (r *fakeLedgerRepo) FindForUpdate(_ context.Context, receiverID uuid.UUID, wk week.Info) (*capacity.Ledger, error) {
	stored, ok := r.ledgers[wk.Key(receiverID)]
	if !ok {
		return nil, infra.WrapRepoErr("ledger not found", nil, infra.KindNotFound)
	}
	ids := make([]uuid.UUID, len(stored.AppointmentIDs()))
	copy(ids, stored.AppointmentIDs())
	return capacity.Reconstruct(
		stored.ReceiverID(), stored.Year(), stored.WeekNumber(), stored.WeekStart(),
		stored.BaseCapacityKg(), stored.BookedKg(), ids,
	), nil
}

func (r *fakeLedgerRepo) Insert(_ context.Context, ledger *capacity.Ledger) error {
	key := ledger.Week().Key(ledger.ReceiverID())
	if _, exists := r.ledgers[key]; exists {
		return infra.WrapRepoErr("ledger already created", nil, infra.KindDuplicateKey)
	}
	r.ledgers[key] = ledger
	return nil
}

func (r *fakeLedgerRepo) Append(_ context.Context, ledger *capacity.Ledger, _ uuid.UUID) error {
	key := ledger.Week().Key(ledger.ReceiverID())
	if _, exists := r.ledgers[key]; !exists {
		return infra.WrapRepoErr("ledger not found", nil, infra.KindNotFound)
	}
	r.ledgers[key] = ledger
	return nil
}

type fakeReceiverStore fakeTx

func (r *fakeReceiverStore) FindByID(_ context.Context, id uuid.UUID) (*receiver.Profile, error) {
	p, ok := r.receivers[id]
	if !ok {
		return nil, infra.WrapRepoErr("receiver not found", nil, infra.KindNotFound)
	}
	return p, nil
}

type fakeStreakNotifier struct {
	calls []streakCall
}

type streakCall struct {
	producerID  uuid.UUID
	confirmedAt time.Time
}

func (n *fakeStreakNotifier) OnDeliveryConfirmed(_ context.Context, producerID uuid.UUID, confirmedAt time.Time) error {
	n.calls = append(n.calls, streakCall{producerID: producerID, confirmedAt: confirmedAt})
	return nil
}
