package offline

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryQueue is an in-process Queue used by tests.
type MemoryQueue struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*Entry
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{entries: make(map[uuid.UUID]*Entry)}
}

func (q *MemoryQueue) Enqueue(_ context.Context, e *Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *e
	q.entries[e.ID] = &copied
	return nil
}

func (q *MemoryQueue) ListPending(_ context.Context) ([]*Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*Entry
	for _, e := range q.entries {
		if e.Status == StatusPendingSync {
			copied := *e
			out = append(out, &copied)
		}
	}
	sortByCreatedAt(out)
	return out, nil
}

func (q *MemoryQueue) ListAll(_ context.Context) ([]*Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Entry, 0, len(q.entries))
	for _, e := range q.entries {
		copied := *e
		out = append(out, &copied)
	}
	sortByCreatedAt(out)
	return out, nil
}

func (q *MemoryQueue) Update(_ context.Context, e *Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *e
	q.entries[e.ID] = &copied
	return nil
}

func (q *MemoryQueue) Remove(_ context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, id)
	return nil
}

func sortByCreatedAt(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID.String() < entries[j].ID.String()
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}
