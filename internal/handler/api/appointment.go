package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/domain/appointment"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/dto/request"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/dto/response"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/httperr"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/middleware"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/commands"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	booking      commands.BookingCommands
	confirmation commands.ConfirmationCommands
	queries      queries.AppointmentQueries
}

func NewAppointmentHandler(
	booking commands.BookingCommands,
	confirmation commands.ConfirmationCommands,
	appointmentQueries queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		booking:      booking,
		confirmation: confirmation,
		queries:      appointmentQueries,
	}
}

// CreateAppointment godoc
// @Summary      Book a delivery appointment
// @Description  Books a volume against the receiver's weekly capacity. Replays are detected via the Idempotency-Key header.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Client request id (UUID) for replay-safe booking"
// @Param        request  body  request.CreateAppointmentRequest  true  "Booking request"
// @Success      201  {object}  response.CreateAppointmentResponse
// @Success      200  {object}  response.CreateAppointmentResponse  "Replayed request"
// @Failure      400  {object}  httperr.Response
// @Failure      404  {object}  httperr.Response
// @Failure      409  {object}  httperr.Response
// @Router       /api/appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Authentication required", nil)
		return
	}

	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	date, err := appointment.ParseScheduledDate(req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	var clientRequestID *uuid.UUID
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		id, err := uuid.Parse(key)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return
		}
		clientRequestID = &id
	}

	result, err := h.booking.CreateAppointment(c.Request.Context(), commands.CreateAppointmentInput{
		ProducerID:      producerID,
		ReceiverID:      req.ReceiverID,
		State:           req.State,
		CityID:          req.CityID,
		Date:            date,
		VolumeKg:        req.VolumeKg,
		ClientRequestID: clientRequestID,
	})
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, response.CreateAppointmentResponse{
		Appointment: response.FromAppointmentView(result.Appointment),
		Replayed:    result.IsReplayed,
	})
}

// ListMine godoc
// @Summary      List the caller's bookings as producer
// @Tags         appointments
// @Produce      json
// @Param        from  query  string  false  "Inclusive lower date bound (YYYY-MM-DD)"
// @Param        to    query  string  false  "Inclusive upper date bound (YYYY-MM-DD)"
// @Success      200  {object}  response.AppointmentListResponse
// @Failure      400  {object}  httperr.Response
// @Router       /api/appointments [get]
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Authentication required", nil)
		return
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date bound, expected YYYY-MM-DD", nil)
		return
	}

	views, err := h.queries.ListByProducer(c.Request.Context(), producerID, dateRange)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list appointments", nil)
		return
	}

	c.JSON(http.StatusOK, response.FromAppointmentViewList(views))
}

// ListReceived godoc
// @Summary      List bookings addressed to the caller as receiver
// @Tags         appointments
// @Produce      json
// @Param        from  query  string  false  "Inclusive lower date bound (YYYY-MM-DD)"
// @Param        to    query  string  false  "Inclusive upper date bound (YYYY-MM-DD)"
// @Success      200  {object}  response.AppointmentListResponse
// @Failure      400  {object}  httperr.Response
// @Router       /api/appointments/received [get]
func (h *AppointmentHandler) ListReceived(c *gin.Context) {
	receiverID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Authentication required", nil)
		return
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date bound, expected YYYY-MM-DD", nil)
		return
	}

	views, err := h.queries.ListByReceiver(c.Request.Context(), receiverID, dateRange)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list appointments", nil)
		return
	}

	c.JSON(http.StatusOK, response.FromAppointmentViewList(views))
}

// GetAppointment godoc
// @Summary      Fetch a single appointment
// @Tags         appointments
// @Produce      json
// @Param        id  path  string  true  "Appointment id"
// @Success      200  {object}  response.AppointmentResponse
// @Failure      403  {object}  httperr.Response
// @Failure      404  {object}  httperr.Response
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Authentication required", nil)
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), appointmentID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
		return
	}
	if view.ProducerID != userID && view.ReceiverID != userID {
		httperr.AbortWithError(c, http.StatusForbidden, errors.New("appointment belongs to other parties"), "Not a party to this appointment", nil)
		return
	}

	c.JSON(http.StatusOK, response.FromAppointmentView(view))
}

// Confirm godoc
// @Summary      Resolve the receiver's confirmation of a delivery
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Appointment id"
// @Param        request  body  request.ConfirmAppointmentRequest  true  "Confirmation verdict"
// @Success      200  {object}  response.AppointmentResponse
// @Failure      400  {object}  httperr.Response
// @Failure      403  {object}  httperr.Response
// @Failure      404  {object}  httperr.Response
// @Failure      409  {object}  httperr.Response
// @Router       /api/appointments/{id}/confirmation [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	receiverID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Authentication required", nil)
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	var req request.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}

	view, err := h.confirmation.ConfirmAppointment(c.Request.Context(), commands.ConfirmAppointmentInput{
		ReceiverID:    receiverID,
		AppointmentID: appointmentID,
		Status:        appointment.ConfirmationStatus(req.Status),
		Notes:         req.Notes,
	})
	if err != nil {
		h.handleConfirmationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromAppointmentView(view))
}

func (h *AppointmentHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReceiverNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Receiver not found", nil)
	case errors.Is(err, commands.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Volume exceeds the receiver's available capacity for that week", nil)
	case errors.Is(err, commands.ErrTransactionConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking conflicted with concurrent requests, please retry", nil)
	case errors.Is(err, commands.ErrInvalidVolume),
		errors.Is(err, commands.ErrInvalidRegion),
		errors.Is(err, commands.ErrInvalidDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create appointment", nil)
	}
}

func (h *AppointmentHandler) handleConfirmationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrAppointmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
	case errors.Is(err, commands.ErrAlreadyConfirmed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Appointment confirmation already resolved", nil)
	case errors.Is(err, commands.ErrNotAppointmentReceiver):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Appointment belongs to another receiver", nil)
	case errors.Is(err, commands.ErrInvalidConfirmation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Confirmation status must be confirmed or problem", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to confirm appointment", nil)
	}
}

func parseDateRange(c *gin.Context) (queries.DateRange, error) {
	var r queries.DateRange
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return queries.DateRange{}, err
		}
		r.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return queries.DateRange{}, err
		}
		r.To = &t
	}
	return r, nil
}
