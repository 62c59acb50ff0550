package response

import (
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
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

type CreateAppointmentResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Replayed    bool                `json:"replayed"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

func FromAppointmentView(v *queries.AppointmentView) AppointmentResponse {
	return AppointmentResponse{
		ID:                 v.ID,
		ProducerID:         v.ProducerID,
		ReceiverID:         v.ReceiverID,
		State:              v.State,
		CityID:             v.CityID,
		Date:               v.Date,
		VolumeKg:           v.VolumeKg,
		Status:             v.Status,
		ClientRequestID:    v.ClientRequestID,
		ConfirmationStatus: v.ConfirmationStatus,
		ConfirmationAt:     v.ConfirmationAt,
		ConfirmationNotes:  v.ConfirmationNotes,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromAppointmentViewList(views []*queries.AppointmentView) AppointmentListResponse {
	items := make([]AppointmentResponse, 0, len(views))
	for _, v := range views {
		items = append(items, FromAppointmentView(v))
	}
	return AppointmentListResponse{Appointments: items, Total: len(items)}
}
