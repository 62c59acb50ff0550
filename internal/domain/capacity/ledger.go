// Package capacity holds the weekly intake ledger, the single source of
// truth for how many kilograms a receiver can still take in a given week.
package capacity

import (
	"errors"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/week"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded = errors.New("volume exceeds available weekly capacity")
	ErrInvalidVolume    = errors.New("volume must be positive")
	ErrNegativeCapacity = errors.New("base capacity cannot be negative")
)

// Ledger is the per-receiver, per-ISO-week aggregate of booked volume.
// BaseCapacityKg is frozen when the ledger is first created: profile edits
// made mid-week apply to future weeks only.
type Ledger struct {
	receiverID     uuid.UUID
	year           int
	weekNumber     int
	weekStart      time.Time
	baseCapacityKg float64
	bookedKg       float64
	appointmentIDs []uuid.UUID
}

// NewLedger opens a ledger for the receiver's week with the capacity
// snapshot taken from the profile at that moment.
func NewLedger(receiverID uuid.UUID, wk week.Info, baseCapacityKg float64) (*Ledger, error) {
	if baseCapacityKg < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Ledger{
		receiverID:     receiverID,
		year:           wk.Year,
		weekNumber:     wk.Number,
		weekStart:      wk.Start,
		baseCapacityKg: baseCapacityKg,
	}, nil
}

// Reconstruct rebuilds a ledger from persisted state.
func Reconstruct(
	receiverID uuid.UUID,
	year, weekNumber int,
	weekStart time.Time,
	baseCapacityKg, bookedKg float64,
	appointmentIDs []uuid.UUID,
) *Ledger {
	return &Ledger{
		receiverID:     receiverID,
		year:           year,
		weekNumber:     weekNumber,
		weekStart:      weekStart,
		baseCapacityKg: baseCapacityKg,
		bookedKg:       bookedKg,
		appointmentIDs: appointmentIDs,
	}
}

// AvailableKg is the room left this week, never negative.
func (l *Ledger) AvailableKg() float64 {
	avail := l.baseCapacityKg - l.bookedKg
	if avail < 0 {
		return 0
	}
	return avail
}

// Book adds a confirmed appointment's volume. It fails without mutating
// when the volume is non-positive or would push bookedKg past the frozen
// base capacity; exact fills are allowed.
func (l *Ledger) Book(appointmentID uuid.UUID, volumeKg float64) error {
	if volumeKg <= 0 {
		return ErrInvalidVolume
	}
	if volumeKg > l.baseCapacityKg-l.bookedKg {
		return ErrCapacityExceeded
	}

	l.bookedKg += volumeKg
	l.appointmentIDs = append(l.appointmentIDs, appointmentID)
	return nil
}

func (l *Ledger) ReceiverID() uuid.UUID       { return l.receiverID }
func (l *Ledger) Year() int                   { return l.year }
func (l *Ledger) WeekNumber() int             { return l.weekNumber }
func (l *Ledger) WeekStart() time.Time        { return l.weekStart }
func (l *Ledger) BaseCapacityKg() float64     { return l.baseCapacityKg }
func (l *Ledger) BookedKg() float64           { return l.bookedKg }
func (l *Ledger) AppointmentIDs() []uuid.UUID { return l.appointmentIDs }

// Week returns the ISO week this ledger covers.
func (l *Ledger) Week() week.Info {
	return week.Info{Year: l.year, Number: l.weekNumber, Start: l.weekStart}
}
