package queries

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByProducer(ctx context.Context, producerID uuid.UUID, r DateRange) ([]*AppointmentView, error)
	FindByReceiver(ctx context.Context, receiverID uuid.UUID, r DateRange) ([]*AppointmentView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	ListByProducer(ctx context.Context, producerID uuid.UUID, r DateRange) ([]*AppointmentView, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, r DateRange) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *appointmentQueriesImpl) ListByProducer(ctx context.Context, producerID uuid.UUID, r DateRange) ([]*AppointmentView, error) {
	return q.store.FindByProducer(ctx, producerID, r)
}

func (q *appointmentQueriesImpl) ListByReceiver(ctx context.Context, receiverID uuid.UUID, r DateRange) ([]*AppointmentView, error) {
	return q.store.FindByReceiver(ctx, receiverID, r)
}
