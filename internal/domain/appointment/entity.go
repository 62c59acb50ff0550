// Package appointment models a single scheduled delivery commitment from a
// producer to a receiver.
package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidVolume        = errors.New("volume must be positive")
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrAlreadyConfirmed     = errors.New("appointment confirmation already resolved")
	ErrInvalidConfirmation  = errors.New("invalid confirmation status")
	ErrConfirmationRequired = errors.New("confirmation status must be confirmed or problem")
)

type Appointment struct {
	id              uuid.UUID
	producerID      uuid.UUID
	receiverID      uuid.UUID
	region          Region
	scheduledDate   ScheduledDate
	volumeKg        float64
	status          Status
	clientRequestID *uuid.UUID

	confirmationStatus ConfirmationStatus
	confirmationAt     *time.Time
	confirmationNotes  *string

	createdAt time.Time
	updatedAt time.Time
}

// NewConfirmed creates a server-side appointment: committed bookings are
// born confirmed with the receiver verdict still pending.
func NewConfirmed(
	producerID, receiverID uuid.UUID,
	region Region,
	date ScheduledDate,
	volumeKg float64,
	clientRequestID *uuid.UUID,
	now time.Time,
) (*Appointment, error) {
	if volumeKg <= 0 {
		return nil, ErrInvalidVolume
	}

	return &Appointment{
		id:                 uuid.New(),
		producerID:         producerID,
		receiverID:         receiverID,
		region:             region,
		scheduledDate:      date,
		volumeKg:           volumeKg,
		status:             StatusConfirmed,
		clientRequestID:    clientRequestID,
		confirmationStatus: ConfirmationPending,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct rebuilds an appointment from persisted state.
func Reconstruct(
	id, producerID, receiverID uuid.UUID,
	region Region,
	date ScheduledDate,
	volumeKg float64,
	status Status,
	clientRequestID *uuid.UUID,
	confirmationStatus ConfirmationStatus,
	confirmationAt *time.Time,
	confirmationNotes *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:                 id,
		producerID:         producerID,
		receiverID:         receiverID,
		region:             region,
		scheduledDate:      date,
		volumeKg:           volumeKg,
		status:             status,
		clientRequestID:    clientRequestID,
		confirmationStatus: confirmationStatus,
		confirmationAt:     confirmationAt,
		confirmationNotes:  confirmationNotes,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ResolveConfirmation moves the receiver verdict out of pending. The
// transition happens at most once: a resolved appointment rejects any
// further attempt so the streak trigger cannot fire twice.
func (a *Appointment) ResolveConfirmation(status ConfirmationStatus, notes Notes, now time.Time) error {
	if !status.IsValid() || !status.IsTerminal() {
		return ErrConfirmationRequired
	}
	if a.confirmationStatus.IsTerminal() {
		return ErrAlreadyConfirmed
	}

	a.confirmationStatus = status
	a.confirmationAt = &now
	if !notes.IsEmpty() {
		v := notes.String()
		a.confirmationNotes = &v
	}
	a.updatedAt = now
	return nil
}

func (a *Appointment) ID() uuid.UUID                { return a.id }
func (a *Appointment) ProducerID() uuid.UUID        { return a.producerID }
func (a *Appointment) ReceiverID() uuid.UUID        { return a.receiverID }
func (a *Appointment) Region() Region               { return a.region }
func (a *Appointment) ScheduledDate() ScheduledDate { return a.scheduledDate }
func (a *Appointment) VolumeKg() float64            { return a.volumeKg }
func (a *Appointment) Status() Status               { return a.status }
func (a *Appointment) ClientRequestID() *uuid.UUID  { return a.clientRequestID }

func (a *Appointment) ConfirmationStatus() ConfirmationStatus { return a.confirmationStatus }
func (a *Appointment) ConfirmationAt() *time.Time             { return a.confirmationAt }
func (a *Appointment) ConfirmationNotes() *string             { return a.confirmationNotes }

func (a *Appointment) CreatedAt() time.Time { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time { return a.updatedAt }
