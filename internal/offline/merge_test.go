//go:build unit

package offline_test

import (
	"testing"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/offline"
	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeWithServer_DropsEntriesAlreadySynced(t *testing.T) {
	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	producerID := uuid.New()

	synced := offline.NewEntry(producerID, uuid.New(), "SP", "3550308", "2025-06-11", 10, base)
	pending := offline.NewEntry(producerID, uuid.New(), "SP", "3550308", "2025-06-12", 5, base.Add(time.Minute))

	// Server already holds the synced entry under its local id as client
	// request id.
	serverView := &queries.AppointmentView{
		ID:              uuid.New(),
		ProducerID:      producerID,
		Date:            "2025-06-11",
		ClientRequestID: &synced.ID,
		CreatedAt:       base,
	}

	merged := offline.MergeWithServer([]*queries.AppointmentView{serverView}, []*offline.Entry{synced, pending})

	require.Len(t, merged, 2)
	assert.Equal(t, serverView.ID, merged[0].ID)
	assert.Equal(t, pending.ID, merged[1].ID)
	assert.Equal(t, string(offline.StatusPendingSync), merged[1].Status)
}

func TestMergeWithServer_SortsByDateThenCreation(t *testing.T) {
	base := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	producerID := uuid.New()

	late := &queries.AppointmentView{ID: uuid.New(), ProducerID: producerID, Date: "2025-06-20", CreatedAt: base}
	early := offline.NewEntry(producerID, uuid.New(), "SP", "3550308", "2025-06-05", 5, base.Add(time.Minute))

	merged := offline.MergeWithServer([]*queries.AppointmentView{late}, []*offline.Entry{early})

	require.Len(t, merged, 2)
	assert.Equal(t, "2025-06-05", merged[0].Date)
	assert.Equal(t, "2025-06-20", merged[1].Date)
}

func TestMergeWithServer_EmptyLocalQueue(t *testing.T) {
	view := &queries.AppointmentView{ID: uuid.New(), Date: "2025-06-11"}
	merged := offline.MergeWithServer([]*queries.AppointmentView{view}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, view.ID, merged[0].ID)
}
