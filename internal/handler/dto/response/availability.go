package response

import (
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReceiverAvailabilityResponse struct {
	ReceiverID        uuid.UUID `json:"receiver_id"`
	Name              string    `json:"name"`
	State             string    `json:"state"`
	CityID            string    `json:"city_id"`
	WeeklyCapacityKg  float64   `json:"weekly_capacity_kg"`
	WeeklyBookedKg    float64   `json:"weekly_booked_kg"`
	WeeklyAvailableKg float64   `json:"weekly_available_kg"`
}

type AvailabilityListResponse struct {
	Receivers []ReceiverAvailabilityResponse `json:"receivers"`
	Total     int                            `json:"total"`
}

func FromAvailabilityViewList(views []*queries.ReceiverAvailabilityView) AvailabilityListResponse {
	items := make([]ReceiverAvailabilityResponse, 0, len(views))
	for _, v := range views {
		items = append(items, ReceiverAvailabilityResponse{
			ReceiverID:        v.ReceiverID,
			Name:              v.Name,
			State:             v.State,
			CityID:            v.CityID,
			WeeklyCapacityKg:  v.WeeklyCapacityKg,
			WeeklyBookedKg:    v.WeeklyBookedKg,
			WeeklyAvailableKg: v.WeeklyAvailableKg,
		})
	}
	return AvailabilityListResponse{Receivers: items, Total: len(items)}
}
