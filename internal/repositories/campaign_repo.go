package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/adpulse/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// CampaignRepo is the in-memory campaign store. Campaigns live for the
// lifetime of the process and are never deleted. The mutex exists because
// HTTP handlers run concurrently; logically each record has a single writer.
type CampaignRepo struct {
	mu        sync.RWMutex
	campaigns []*models.Campaign
}

func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{}
}

// Create prepends so listings come back newest first.
func (r *CampaignRepo) Create(c *models.Campaign) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns = append([]*models.Campaign{c}, r.campaigns...)
}

func (r *CampaignRepo) GetByID(id string) (*models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.campaigns {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *CampaignRepo) List() []models.Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	return out
}

// CampaignPatch names the fields an update may replace. Nil fields are left
// untouched; a non-nil platform slice replaces the list wholesale.
type CampaignPatch struct {
	Name           *string
	Advertiser     *models.Brand
	Budget         *float64
	StartDate      *string
	EndDate        *string
	Objective      *string
	Platforms      []models.Platform
	TargetAudience *string
	Status         *string
	Progress       *int
}

// Update merges the patch into the matching record. A missing id is an error
// and nothing is written.
func (r *CampaignRepo) Update(id string, p CampaignPatch) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.campaigns {
		if c.ID != id {
			continue
		}
		if p.Name != nil {
			c.Name = *p.Name
		}
		if p.Advertiser != nil {
			c.Advertiser = *p.Advertiser
		}
		if p.Budget != nil {
			c.Budget = *p.Budget
		}
		if p.StartDate != nil {
			c.StartDate = *p.StartDate
		}
		if p.EndDate != nil {
			c.EndDate = *p.EndDate
		}
		if p.Objective != nil {
			c.Objective = *p.Objective
		}
		if p.Platforms != nil {
			c.Platforms = p.Platforms
		}
		if p.TargetAudience != nil {
			c.TargetAudience = *p.TargetAudience
		}
		if p.Status != nil {
			c.Status = *p.Status
		}
		if p.Progress != nil {
			c.Progress = *p.Progress
		}
		c.UpdatedAt = time.Now()
		copied := *c
		return &copied, nil
	}
	return nil, ErrNotFound
}
