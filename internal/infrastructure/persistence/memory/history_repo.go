package memory

import (
	"context"
	"sync"

	"hookgenie-api/internal/domain/entity"
)

type HistoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]entity.HistoryEntry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{sessions: make(map[string][]entity.HistoryEntry)}
}

func (r *HistoryRepository) Prepend(_ context.Context, sessionID string, entry *entity.HistoryEntry, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.sessions[sessionID]
	next := make([]entity.HistoryEntry, 0, len(cur)+1)
	next = append(next, cloneEntry(*entry))
	next = append(next, cur...)
	if capacity > 0 && len(next) > capacity {
		next = next[:capacity]
	}
	r.sessions[sessionID] = next
	return nil
}

func (r *HistoryRepository) List(_ context.Context, sessionID string, limit int) ([]*entity.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cur := r.sessions[sessionID]
	if limit > 0 && len(cur) > limit {
		cur = cur[:limit]
	}
	out := make([]*entity.HistoryEntry, 0, len(cur))
	for _, e := range cur {
		c := cloneEntry(e)
		out = append(out, &c)
	}
	return out, nil
}

func (r *HistoryRepository) Delete(_ context.Context, sessionID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.sessions[sessionID]
	for i, e := range cur {
		if e.ID != id {
			continue
		}
		next := make([]entity.HistoryEntry, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		r.sessions[sessionID] = next
		return true, nil
	}
	return false, nil
}

func (r *HistoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func cloneEntry(e entity.HistoryEntry) entity.HistoryEntry {
	e.Hooks = append([]string(nil), e.Hooks...)
	return e
}
