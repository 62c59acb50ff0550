package api

import (
	"net/http"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/dto/request"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/dto/response"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/httperr"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: availabilityQueries}
}

// ListByRegion godoc
// @Summary      List receivers in a region with their current-week availability
// @Tags         receivers
// @Produce      json
// @Param        state    query  string  true  "State code (e.g. SP)"
// @Param        city_id  query  string  true  "City identifier"
// @Success      200  {object}  response.AvailabilityListResponse
// @Failure      400  {object}  httperr.Response
// @Router       /api/receivers/availability [get]
func (h *AvailabilityHandler) ListByRegion(c *gin.Context) {
	var req request.ListAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "state and city_id are required", nil)
		return
	}

	views, err := h.queries.ListByRegion(c.Request.Context(), req.State, req.CityID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to query availability", nil)
		return
	}

	c.JSON(http.StatusOK, response.FromAvailabilityViewList(views))
}
