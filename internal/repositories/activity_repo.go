package repositories

import (
	"sync"

	"github.com/adpulse/backend/internal/models"
)

// ActivityRepo is the append-only, newest-first activity log. Entries are
// never mutated or deleted; the only cap is process memory.
type ActivityRepo struct {
	mu      sync.RWMutex
	entries []*models.ActivityEntry
}

func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

// Append prepends so the newest entry is always first.
func (r *ActivityRepo) Append(e *models.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]*models.ActivityEntry{e}, r.entries...)
}

func (r *ActivityRepo) List() []models.ActivityEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ActivityEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out
}
