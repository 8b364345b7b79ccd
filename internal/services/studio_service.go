package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/adpulse/backend/internal/events"
	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"github.com/bpradana/weave"
	"go.uber.org/zap"
)

// Copy defaults applied when the model omits a field.
const (
	defaultHeadline        = "Experience Excellence"
	defaultDescription     = "Shop now for the best deals."
	defaultCTA             = "Shop Now"
	defaultComplianceScore = 85

	placeholderProduct = "Premium Product"
)

// CopyGenerator is the slice of the AI client the studio depends on.
type CopyGenerator interface {
	Enabled() bool
	GenerateAdCopy(ctx context.Context, advertiser models.Brand, platform models.Platform, product, audience, objective string) (*AdCopy, error)
	ScoreCompliance(ctx context.Context, platform models.Platform, headline, description string, advertiser models.Brand) ComplianceResult
}

// GenerationOutcome reports a batch: the assets that made it and, per
// platform, why the others did not. Partial success is a valid outcome;
// completed platforms are kept even when a sibling fails.
type GenerationOutcome struct {
	Assets   []models.CreativeAsset     `json:"assets"`
	Failures map[models.Platform]string `json:"failures,omitempty"`
}

// StudioService generates creative assets for a campaign, one per target
// platform, by fanning out copy, compliance, and image work as a task graph.
type StudioService struct {
	campaignRepo *repositories.CampaignRepo
	creativeRepo *repositories.CreativeRepo
	activityRepo *repositories.ActivityRepo
	ai           CopyGenerator
	publisher    events.Publisher
	log          *zap.Logger
}

func NewStudioService(
	campaignRepo *repositories.CampaignRepo,
	creativeRepo *repositories.CreativeRepo,
	activityRepo *repositories.ActivityRepo,
	ai CopyGenerator,
	publisher events.Publisher,
	log *zap.Logger,
) *StudioService {
	return &StudioService{
		campaignRepo: campaignRepo,
		creativeRepo: creativeRepo,
		activityRepo: activityRepo,
		ai:           ai,
		publisher:    publisher,
		log:          log,
	}
}

type platformPipeline struct {
	platform models.Platform
	copyTask *weave.Handle[*AdCopy]
	score    *weave.Handle[ComplianceResult]
	image    *weave.Handle[string]
}

// Generate runs the per-platform fan-out for one campaign. Platforms execute
// concurrently and independently; the batch is appended to the store in one
// write once every pipeline has settled. A failed platform is reported in
// the outcome instead of aborting the batch, so completed work is not thrown
// away.
func (s *StudioService) Generate(ctx context.Context, campaignID string) (*GenerationOutcome, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found: %w", err)
	}
	if len(campaign.Platforms) == 0 {
		return nil, fmt.Errorf("campaign %q has no target platforms", campaign.Name)
	}
	if !s.ai.Enabled() {
		return nil, ErrAIUnavailable
	}

	graph := weave.NewGraph()
	pipelines := make([]platformPipeline, 0, len(campaign.Platforms))

	for _, platform := range campaign.Platforms {
		copyTask, err := weave.AddTask(graph, "copy-"+string(platform), func(ctx context.Context, deps weave.DependencyResolver) (*AdCopy, error) {
			return s.ai.GenerateAdCopy(ctx, campaign.Advertiser, platform, placeholderProduct, campaign.TargetAudience, campaign.Objective)
		})
		if err != nil {
			return nil, err
		}

		scoreTask, err := weave.AddTask(graph, "score-"+string(platform), func(ctx context.Context, deps weave.DependencyResolver) (ComplianceResult, error) {
			copyData, err := copyTask.Value(deps)
			if err != nil {
				return ComplianceResult{}, err
			}
			return s.ai.ScoreCompliance(ctx, platform, copyData.Headline, copyData.Description, campaign.Advertiser), nil
		}, weave.DependsOn(copyTask))
		if err != nil {
			return nil, err
		}

		imageTask, err := weave.AddTask(graph, "image-"+string(platform), func(ctx context.Context, deps weave.DependencyResolver) (string, error) {
			return creativeImageURL(campaign.Advertiser, campaign.Objective, platform), nil
		})
		if err != nil {
			return nil, err
		}

		pipelines = append(pipelines, platformPipeline{
			platform: platform,
			copyTask: copyTask,
			score:    scoreTask,
			image:    imageTask,
		})
	}

	results, _, runErr := graph.Run(ctx, weave.WithErrorStrategy(weave.ContinueOnError))
	if results == nil {
		return nil, runErr
	}

	outcome := &GenerationOutcome{Failures: make(map[models.Platform]string)}
	assets := make([]*models.CreativeAsset, 0, len(pipelines))

	for _, p := range pipelines {
		copyData, err := p.copyTask.Value(results)
		if err != nil {
			s.log.Warn("platform generation failed",
				zap.String("campaign_id", campaignID),
				zap.String("platform", string(p.platform)),
				zap.Error(err),
			)
			outcome.Failures[p.platform] = err.Error()
			continue
		}

		score, err := p.score.Value(results)
		if err != nil {
			// Unreachable when copy succeeded; scoring degrades internally.
			score = ComplianceResult{Score: 0, Issues: []string{"AI Validation Failed"}}
		}
		imageURL, _ := p.image.Value(results)

		asset := &models.CreativeAsset{
			ID:               models.NewAssetID(),
			CampaignID:       campaign.ID,
			Platform:         p.platform,
			Type:             models.AssetTypeBanner,
			Headline:         copyData.Headline,
			Description:      copyData.Description,
			CTA:              copyData.CTA,
			ImageURL:         imageURL,
			ComplianceScore:  score.Score,
			ComplianceIssues: score.Issues,
			Status:           models.AssetStatusGenerated,
		}
		if asset.Headline == "" {
			asset.Headline = defaultHeadline
		}
		if asset.Description == "" {
			asset.Description = defaultDescription
		}
		if asset.CTA == "" {
			asset.CTA = defaultCTA
		}
		if asset.ComplianceIssues == nil {
			asset.ComplianceIssues = []string{}
		}
		assets = append(assets, asset)
	}

	if len(assets) > 0 {
		s.creativeRepo.CreateBatch(assets)
		outcome.Assets = make([]models.CreativeAsset, 0, len(assets))
		for _, a := range assets {
			outcome.Assets = append(outcome.Assets, *a)
		}

		s.activityRepo.Append(&models.ActivityEntry{
			ID:        models.NewActivityID(),
			Text:      fmt.Sprintf("Generated %d new creative assets", len(assets)),
			Timestamp: time.Now(),
			Severity:  models.SeveritySuccess,
		})
		_ = s.publisher.Publish(ctx, events.StreamDashboard, events.Event{
			Type: events.EventAssetsGenerated,
			Payload: map[string]any{
				"campaign_id": campaign.ID,
				"count":       len(assets),
			},
		})
	}

	if len(outcome.Failures) == 0 {
		outcome.Failures = nil
	} else if len(assets) == 0 && runErr != nil {
		// Every platform failed; surface the first error as the batch error.
		return outcome, fmt.Errorf("generation failed for all platforms: %w", runErr)
	}

	return outcome, nil
}

func (s *StudioService) ListByCampaign(campaignID string) []models.CreativeAsset {
	return s.creativeRepo.ListByCampaign(campaignID)
}

// UpdateAsset applies the edit/approve actions. An approval is worth an
// activity entry and a live event; plain copy edits are silent.
func (s *StudioService) UpdateAsset(ctx context.Context, assetID string, patch repositories.CreativePatch) (*models.CreativeAsset, error) {
	if patch.Status != nil {
		switch *patch.Status {
		case models.AssetStatusGenerated, models.AssetStatusApproved, models.AssetStatusRejected:
		default:
			return nil, fmt.Errorf("invalid asset status %q", *patch.Status)
		}
	}

	asset, err := s.creativeRepo.Update(assetID, patch)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status == models.AssetStatusApproved {
		s.activityRepo.Append(&models.ActivityEntry{
			ID:        models.NewActivityID(),
			Text:      "Creative asset approved",
			Timestamp: time.Now(),
			Severity:  models.SeverityInfo,
		})
		_ = s.publisher.Publish(ctx, events.StreamDashboard, events.Event{
			Type: events.EventAssetUpdated,
			Payload: map[string]any{
				"asset_id": asset.ID,
				"status":   asset.Status,
			},
		})
	}

	return asset, nil
}

// creativeImageURL builds the illustrative image URL from a deterministic
// prompt plus a random seed, so regenerating yields fresh art for the same
// campaign.
func creativeImageURL(advertiser models.Brand, objective string, platform models.Platform) string {
	prompt := fmt.Sprintf("%s product advertisement %s %s style high quality retail", advertiser, objective, platform)
	seed := rand.IntN(1000)
	return fmt.Sprintf("https://image.pollinations.ai/prompt/%s?nologo=true&seed=%d", url.PathEscape(prompt), seed)
}
