package services

import (
	"context"
	"fmt"
	"time"

	"github.com/adpulse/backend/internal/events"
	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// WorkflowService steps campaigns through the approval state machine. Every
// transition is a single synchronous status write plus an activity entry and
// a live event; there are no other side effects.
type WorkflowService struct {
	campaignRepo *repositories.CampaignRepo
	activityRepo *repositories.ActivityRepo
	publisher    events.Publisher
	log          *zap.Logger
}

func NewWorkflowService(
	campaignRepo *repositories.CampaignRepo,
	activityRepo *repositories.ActivityRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		log:          log,
	}
}

// Transition applies a named workflow action. Actions not enabled for the
// campaign's current status are rejected and nothing is written.
func (s *WorkflowService) Transition(ctx context.Context, campaignID, action string) (*models.Campaign, error) {
	edge, ok := models.WorkflowActions[action]
	if !ok {
		return nil, fmt.Errorf("unknown workflow action %q", action)
	}

	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}

	if campaign.Status != edge.From || !models.IsValidTransition(campaign.Status, edge.To) {
		return nil, fmt.Errorf("action %q not allowed from status %q", action, campaign.Status)
	}

	oldStatus := campaign.Status
	newStatus := edge.To
	updated, err := s.campaignRepo.Update(campaignID, repositories.CampaignPatch{Status: &newStatus})
	if err != nil {
		return nil, err
	}

	s.activityRepo.Append(&models.ActivityEntry{
		ID:        models.NewActivityID(),
		Text:      fmt.Sprintf("Campaign %q status changed to %s", campaign.Name, newStatus),
		Timestamp: time.Now(),
		Severity:  models.SeverityWarning,
	})

	_ = s.publisher.Publish(ctx, events.StreamDashboard, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": campaign.ID,
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})

	s.log.Info("campaign transition",
		zap.String("campaign_id", campaign.ID),
		zap.String("action", action),
		zap.String("from", oldStatus),
		zap.String("to", newStatus),
	)

	return updated, nil
}

// Timeline describes the fixed five-step approval display for a campaign.
type Timeline struct {
	Steps          []models.WorkflowStep `json:"steps"`
	CurrentIndex   int                   `json:"current_index"`
	Status         string                `json:"status"`
	AllowedActions []string              `json:"allowed_actions"`
}

func (s *WorkflowService) Timeline(campaignID string) (*Timeline, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}

	return &Timeline{
		Steps:          models.WorkflowSteps,
		CurrentIndex:   models.WorkflowStepIndex(campaign.Status),
		Status:         campaign.Status,
		AllowedActions: models.AllowedActions(campaign.Status),
	}, nil
}
