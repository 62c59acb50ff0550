package request

import "github.com/google/uuid"

type CreateAppointmentRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	State      string    `json:"state" binding:"required"`
	CityID     string    `json:"city_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	VolumeKg   float64   `json:"volume_kg" binding:"required,gt=0"`
}

type ConfirmAppointmentRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed problem"`
	Notes  string `json:"notes" binding:"max=500"`
}
