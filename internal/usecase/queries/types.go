package queries

import (
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type AppointmentView struct {
	ID                 uuid.UUID  `json:"id"`
	ProducerID         uuid.UUID  `json:"producer_id"`
	ReceiverID         uuid.UUID  `json:"receiver_id"`
	State              string     `json:"state"`
	CityID             string     `json:"city_id"`
	Date               string     `json:"date"`
	VolumeKg           float64    `json:"volume_kg"`
	Status             string     `json:"status"`
	ClientRequestID    *uuid.UUID `json:"client_request_id,omitempty"`
	ConfirmationStatus string     `json:"confirmation_status"`
	ConfirmationAt     *time.Time `json:"confirmation_at,omitempty"`
	ConfirmationNotes  *string    `json:"confirmation_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ReceiverAvailabilityView struct {
	ReceiverID        uuid.UUID `json:"receiver_id"`
	Name              string    `json:"name"`
	State             string    `json:"state"`
	CityID            string    `json:"city_id"`
	WeeklyCapacityKg  float64   `json:"weekly_capacity_kg"`
	WeeklyBookedKg    float64   `json:"weekly_booked_kg"`
	WeeklyAvailableKg float64   `json:"weekly_available_kg"`
}

// DateRange bounds a listing query; either side may be open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// NewAppointmentView projects a domain appointment onto the read model,
// used by the command side to answer without a read-after-write round trip.
func NewAppointmentView(a *appointment.Appointment) *AppointmentView {
	return &AppointmentView{
		ID:                 a.ID(),
		ProducerID:         a.ProducerID(),
		ReceiverID:         a.ReceiverID(),
		State:              a.Region().State(),
		CityID:             a.Region().CityID(),
		Date:               a.ScheduledDate().String(),
		VolumeKg:           a.VolumeKg(),
		Status:             a.Status().String(),
		ClientRequestID:    a.ClientRequestID(),
		ConfirmationStatus: a.ConfirmationStatus().String(),
		ConfirmationAt:     a.ConfirmationAt(),
		ConfirmationNotes:  a.ConfirmationNotes(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}
