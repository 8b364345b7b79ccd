package repositories

import (
	"sync"

	"github.com/adpulse/backend/internal/models"
)

// CreativeRepo is the in-memory creative asset store. Assets append in
// generation order and are never deleted.
type CreativeRepo struct {
	mu     sync.RWMutex
	assets []*models.CreativeAsset
}

func NewCreativeRepo() *CreativeRepo {
	return &CreativeRepo{}
}

// CreateBatch appends a whole generation batch atomically.
func (r *CreativeRepo) CreateBatch(assets []*models.CreativeAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = append(r.assets, assets...)
}

func (r *CreativeRepo) GetByID(id string) (*models.CreativeAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.assets {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// ListByCampaign returns the campaign's assets preserving insertion order.
func (r *CreativeRepo) ListByCampaign(campaignID string) []models.CreativeAsset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.CreativeAsset
	for _, a := range r.assets {
		if a.CampaignID == campaignID {
			out = append(out, *a)
		}
	}
	return out
}

func (r *CreativeRepo) List() []models.CreativeAsset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CreativeAsset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, *a)
	}
	return out
}

// CreativePatch names the fields the edit/approve actions may replace.
type CreativePatch struct {
	Headline    *string
	Description *string
	CTA         *string
	Status      *string
}

func (r *CreativeRepo) Update(id string, p CreativePatch) (*models.CreativeAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID != id {
			continue
		}
		if p.Headline != nil {
			a.Headline = *p.Headline
		}
		if p.Description != nil {
			a.Description = *p.Description
		}
		if p.CTA != nil {
			a.CTA = *p.CTA
		}
		if p.Status != nil {
			a.Status = *p.Status
		}
		copied := *a
		return &copied, nil
	}
	return nil, ErrNotFound
}
