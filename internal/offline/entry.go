// Package offline holds the producer-side reconciliation queue: bookings
// captured without connectivity are stored locally as pending_sync and
// replayed against the server when the link returns.
package offline

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EntryStatus string

const (
	StatusPendingSync EntryStatus = "pending_sync"
	StatusSyncError   EntryStatus = "sync_error"
)

// Entry is a locally captured booking awaiting server reconciliation. ID is
// generated on the device and reused as the Idempotency-Key on replay, so a
// drain interrupted mid-flight never double-books.
type Entry struct {
	ID            uuid.UUID   `gorm:"type:text;primaryKey" json:"id"`
	ProducerID    uuid.UUID   `gorm:"type:text;not null;index" json:"producer_id"`
	ReceiverID    uuid.UUID   `gorm:"type:text;not null" json:"receiver_id"`
	State         string      `gorm:"not null" json:"state"`
	CityID        string      `gorm:"not null" json:"city_id"`
	Date          string      `gorm:"not null" json:"date"`
	VolumeKg      float64     `gorm:"not null" json:"volume_kg"`
	Status        EntryStatus `gorm:"not null;default:pending_sync;index" json:"status"`
	FailureReason string      `json:"failure_reason,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (Entry) TableName() string {
	return "offline_appointments"
}

func NewEntry(producerID, receiverID uuid.UUID, state, cityID, date string, volumeKg float64, now time.Time) *Entry {
	return &Entry{
		ID:         uuid.New(),
		ProducerID: producerID,
		ReceiverID: receiverID,
		State:      state,
		CityID:     cityID,
		Date:       date,
		VolumeKg:   volumeKg,
		Status:     StatusPendingSync,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (e *Entry) MarkSyncError(reason string, now time.Time) {
	e.Status = StatusSyncError
	e.FailureReason = reason
	e.UpdatedAt = now
}

// Queue is the local persistence behind the reconciliation loop.
type Queue interface {
	Enqueue(ctx context.Context, e *Entry) error
	// ListPending returns pending entries oldest first; replay order is
	// capture order.
	ListPending(ctx context.Context) ([]*Entry, error)
	ListAll(ctx context.Context) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Remove(ctx context.Context, id uuid.UUID) error
}
