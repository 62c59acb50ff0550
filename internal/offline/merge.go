package offline

import (
	"sort"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/usecase/queries"

	"github.com/google/uuid"
)

// MergeWithServer unions server-confirmed appointments with local queue
// entries into one producer-facing listing. A queue entry whose id already
// appears server-side (as appointment id or as client request id) was synced
// by an interrupted drain and is dropped from the local side.
func MergeWithServer(serverViews []*queries.AppointmentView, local []*Entry) []*queries.AppointmentView {
	seen := make(map[uuid.UUID]struct{}, len(serverViews)*2)
	merged := make([]*queries.AppointmentView, 0, len(serverViews)+len(local))

	for _, v := range serverViews {
		seen[v.ID] = struct{}{}
		if v.ClientRequestID != nil {
			seen[*v.ClientRequestID] = struct{}{}
		}
		merged = append(merged, v)
	}

	for _, e := range local {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		merged = append(merged, localEntryView(e))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Date == merged[j].Date {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].Date < merged[j].Date
	})
	return merged
}

func localEntryView(e *Entry) *queries.AppointmentView {
	id := e.ID
	return &queries.AppointmentView{
		ID:                 e.ID,
		ProducerID:         e.ProducerID,
		ReceiverID:         e.ReceiverID,
		State:              e.State,
		CityID:             e.CityID,
		Date:               e.Date,
		VolumeKg:           e.VolumeKg,
		Status:             string(e.Status),
		ClientRequestID:    &id,
		ConfirmationStatus: "pending",
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
