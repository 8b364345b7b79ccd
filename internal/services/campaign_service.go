package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adpulse/backend/internal/events"
	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	activityRepo *repositories.ActivityRepo
	publisher    events.Publisher
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	activityRepo *repositories.ActivityRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		log:          log,
	}
}

// Create persists a finalized campaign and records the creation.
func (s *CampaignService) Create(ctx context.Context, c *models.Campaign) {
	s.campaignRepo.Create(c)

	s.activityRepo.Append(&models.ActivityEntry{
		ID:        models.NewActivityID(),
		Text:      fmt.Sprintf("New campaign created: %s", c.Name),
		Timestamp: time.Now(),
		Severity:  models.SeveritySuccess,
	})

	_ = s.publisher.Publish(ctx, events.StreamDashboard, events.Event{
		Type: events.EventCampaignCreated,
		Payload: map[string]any{
			"campaign_id": c.ID,
			"name":        c.Name,
		},
	})
}

func (s *CampaignService) GetByID(id string) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(id)
}

func (s *CampaignService) List() []models.Campaign {
	return s.campaignRepo.List()
}

// Update patches arbitrary campaign fields. A status change still has to be
// a legal transition; the approval workflow is the usual path for those, but
// direct edits must not escape the state machine either.
func (s *CampaignService) Update(ctx context.Context, id string, patch repositories.CampaignPatch) (*models.Campaign, error) {
	if patch.Advertiser != nil && !models.IsValidBrand(string(*patch.Advertiser)) {
		return nil, fmt.Errorf("unknown advertiser %q", *patch.Advertiser)
	}
	if patch.Platforms != nil {
		for _, p := range patch.Platforms {
			if !models.IsValidPlatform(string(p)) {
				return nil, fmt.Errorf("unknown platform %q", p)
			}
		}
	}
	if patch.Budget != nil && *patch.Budget < 0 {
		return nil, fmt.Errorf("budget must be non-negative")
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return nil, fmt.Errorf("progress must be between 0 and 100")
	}

	if patch.Status != nil {
		existing, err := s.campaignRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if *patch.Status != existing.Status && !models.IsValidTransition(existing.Status, *patch.Status) {
			return nil, fmt.Errorf("invalid transition from %s to %s", existing.Status, *patch.Status)
		}
	}

	return s.campaignRepo.Update(id, patch)
}

// Advisory display metrics. ROAS is a fixed simulated figure; impressions
// scale deterministically with spend so the number stays stable across reads.
const (
	simulatedAvgRoas     = 3.4
	impressionsPerDollar = 150
)

// DashboardStats is the aggregate header of the dashboard screen.
type DashboardStats struct {
	TotalSpend       float64            `json:"total_spend"`
	ActiveCampaigns  int                `json:"active_campaigns"`
	PendingApprovals int                `json:"pending_approvals"`
	AvgRoas          float64            `json:"avg_roas"`
	Impressions      int64              `json:"impressions"`
	PlatformSpend    map[string]float64 `json:"platform_spend"`
}

// Stats aggregates over the in-memory store. Platform spend splits each
// budget evenly across the campaign's platforms, keyed by the platform's
// first word the way the spend chart labels them.
func (s *CampaignService) Stats() DashboardStats {
	stats := DashboardStats{
		AvgRoas:       simulatedAvgRoas,
		PlatformSpend: make(map[string]float64),
	}

	for _, c := range s.campaignRepo.List() {
		stats.TotalSpend += c.Budget
		switch c.Status {
		case models.CampaignStatusLive:
			stats.ActiveCampaigns++
		case models.CampaignStatusPendingApproval:
			stats.PendingApprovals++
		}

		if len(c.Platforms) == 0 {
			continue
		}
		perPlatform := c.Budget / float64(len(c.Platforms))
		for _, p := range c.Platforms {
			short := strings.SplitN(string(p), " ", 2)[0]
			stats.PlatformSpend[short] += perPlatform
		}
	}

	stats.Impressions = int64(stats.TotalSpend) * impressionsPerDollar
	return stats
}
