package request

type ListAvailabilityRequest struct {
	State  string `form:"state" binding:"required"`
	CityID string `form:"city_id" binding:"required"`
	Date   string `form:"date"`
}
