//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/handler/api"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/commands"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingCommands struct {
	result   *commands.CreateAppointmentResult
	err      error
	gotInput commands.CreateAppointmentInput
}

func (f *fakeBookingCommands) CreateAppointment(_ context.Context, in commands.CreateAppointmentInput) (*commands.CreateAppointmentResult, error) {
	f.gotInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeConfirmationCommands struct {
	view *queries.AppointmentView
	err  error
}

func (f *fakeConfirmationCommands) ConfirmAppointment(_ context.Context, _ commands.ConfirmAppointmentInput) (*queries.AppointmentView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

type fakeAppointmentQueries struct {
	view  *queries.AppointmentView
	views []*queries.AppointmentView
	err   error
}

func (f *fakeAppointmentQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.AppointmentView, error) {
	return f.view, f.err
}

func (f *fakeAppointmentQueries) ListByProducer(_ context.Context, _ uuid.UUID, _ queries.DateRange) ([]*queries.AppointmentView, error) {
	return f.views, f.err
}

func (f *fakeAppointmentQueries) ListByReceiver(_ context.Context, _ uuid.UUID, _ queries.DateRange) ([]*queries.AppointmentView, error) {
	return f.views, f.err
}

func setupRouter(userID uuid.UUID, booking *fakeBookingCommands, confirmation *fakeConfirmationCommands, q *fakeAppointmentQueries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := api.NewAppointmentHandler(booking, confirmation, q)

	stubAuth := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("profile_type", "producer")
		c.Next()
	}

	router.POST("/api/appointments", stubAuth, handler.CreateAppointment)
	router.GET("/api/appointments", stubAuth, handler.ListMine)
	router.POST("/api/appointments/:id/confirmation", stubAuth, handler.Confirm)
	return router
}

func validBookingBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"receiver_id": uuid.New().String(),
		"state":       "SP",
		"city_id":     "3550308",
		"date":        "2025-06-11",
		"volume_kg":   25,
	})
	require.NoError(t, err)
	return body
}

func TestCreateAppointment_Created(t *testing.T) {
	userID := uuid.New()
	booking := &fakeBookingCommands{
		result: &commands.CreateAppointmentResult{
			Appointment: &queries.AppointmentView{ID: uuid.New(), ProducerID: userID},
		},
	}
	router := setupRouter(userID, booking, &fakeConfirmationCommands{}, &fakeAppointmentQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBookingBody(t)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, booking.gotInput.ProducerID)
	assert.Nil(t, booking.gotInput.ClientRequestID)
}

func TestCreateAppointment_ReplayReturns200(t *testing.T) {
	userID := uuid.New()
	booking := &fakeBookingCommands{
		result: &commands.CreateAppointmentResult{
			Appointment: &queries.AppointmentView{ID: uuid.New(), ProducerID: userID},
			IsReplayed:  true,
		},
	}
	router := setupRouter(userID, booking, &fakeConfirmationCommands{}, &fakeAppointmentQueries{})

	key := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBookingBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, booking.gotInput.ClientRequestID)
	assert.Equal(t, key, *booking.gotInput.ClientRequestID)

	var resp struct {
		Replayed bool `json:"replayed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Replayed)
}

func TestCreateAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"receiver not found", commands.ErrReceiverNotFound, http.StatusNotFound},
		{"capacity exceeded", commands.ErrCapacityExceeded, http.StatusConflict},
		{"transaction conflict", commands.ErrTransactionConflict, http.StatusConflict},
		{"invalid volume", commands.ErrInvalidVolume, http.StatusBadRequest},
		{"database failure", commands.ErrDatabaseOperationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(uuid.New(), &fakeBookingCommands{err: tt.err}, &fakeConfirmationCommands{}, &fakeAppointmentQueries{})

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBookingBody(t)))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreateAppointment_InvalidIdempotencyKey(t *testing.T) {
	router := setupRouter(uuid.New(), &fakeBookingCommands{}, &fakeConfirmationCommands{}, &fakeAppointmentQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(validBookingBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "not-a-uuid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMine_DateRangeValidation(t *testing.T) {
	router := setupRouter(uuid.New(), &fakeBookingCommands{}, &fakeConfirmationCommands{}, &fakeAppointmentQueries{})

	req := httptest.NewRequest(http.MethodGet, "/api/appointments?from=junk", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirm_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", commands.ErrAppointmentNotFound, http.StatusNotFound},
		{"already resolved", commands.ErrAlreadyConfirmed, http.StatusConflict},
		{"wrong receiver", commands.ErrNotAppointmentReceiver, http.StatusForbidden},
		{"invalid status", commands.ErrInvalidConfirmation, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(uuid.New(), &fakeBookingCommands{}, &fakeConfirmationCommands{err: tt.err}, &fakeAppointmentQueries{})

			body, _ := json.Marshal(map[string]string{"status": "confirmed"})
			req := httptest.NewRequest(http.MethodPost, "/api/appointments/"+uuid.NewString()+"/confirmation", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
