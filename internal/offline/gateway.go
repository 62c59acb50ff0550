package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrUnreachable means the server could not be contacted at all; the
	// entry stays pending and the drain pass stops.
	ErrUnreachable = errs.New("booking server unreachable")
	// ErrRejected means the server processed the booking and refused it;
	// retrying the same entry will never succeed.
	ErrRejected = errs.New("booking rejected by server")
)

// BookingGateway submits a locally captured booking to the server.
type BookingGateway interface {
	Submit(ctx context.Context, e *Entry) error
}

type HTTPGateway struct {
	client    *http.Client
	serverURL string
	token     string
}

func NewHTTPGateway(serverURL, token string) *HTTPGateway {
	return &HTTPGateway{
		client:    &http.Client{Timeout: 15 * time.Second},
		serverURL: serverURL,
		token:     token,
	}
}

type submitPayload struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	State      string    `json:"state"`
	CityID     string    `json:"city_id"`
	Date       string    `json:"date"`
	VolumeKg   float64   `json:"volume_kg"`
}

// Submit posts the entry with its local id as Idempotency-Key. A replayed
// submission comes back 200 instead of 201 and counts as success.
func (g *HTTPGateway) Submit(ctx context.Context, e *Entry) error {
	body, err := json.Marshal(submitPayload{
		ReceiverID: e.ReceiverID,
		State:      e.State,
		CityID:     e.CityID,
		Date:       e.Date,
		VolumeKg:   e.VolumeKg,
	})
	if err != nil {
		return errs.Wrap(err, "encode booking payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.serverURL+"/api/appointments", bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "build booking request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", e.ID.String())
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, ErrUnreachable)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 500:
		return errs.Mark(fmt.Errorf("server error: status %d", resp.StatusCode), ErrUnreachable)
	default:
		msg := readErrorMessage(resp.Body)
		return errs.Mark(fmt.Errorf("status %d: %s", resp.StatusCode, msg), ErrRejected)
	}
}

func readErrorMessage(r io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no detail"
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Error.Message == "" {
		return string(data)
	}
	return envelope.Error.Message
}
