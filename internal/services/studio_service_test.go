package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adpulse/backend/internal/events"
	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// stubAI answers per-platform; entries absent from the maps get defaults.
// Weave runs the tasks concurrently, so the maps are read-only after setup.
type stubAI struct {
	enabled    bool
	copyErr    map[models.Platform]error
	copy       map[models.Platform]*AdCopy
	compliance map[models.Platform]ComplianceResult
}

func (s *stubAI) Enabled() bool { return s.enabled }

func (s *stubAI) GenerateAdCopy(ctx context.Context, advertiser models.Brand, platform models.Platform, product, audience, objective string) (*AdCopy, error) {
	if err := s.copyErr[platform]; err != nil {
		return nil, err
	}
	if c, ok := s.copy[platform]; ok {
		return c, nil
	}
	return &AdCopy{Headline: "H " + string(platform), Description: "D", CTA: "Shop Now"}, nil
}

func (s *stubAI) ScoreCompliance(ctx context.Context, platform models.Platform, headline, description string, advertiser models.Brand) ComplianceResult {
	if r, ok := s.compliance[platform]; ok {
		return r
	}
	return ComplianceResult{Score: defaultComplianceScore, Issues: []string{}}
}

type studioFixture struct {
	svc       *StudioService
	campaigns *repositories.CampaignRepo
	creatives *repositories.CreativeRepo
	activity  *repositories.ActivityRepo
	bus       *events.MemoryBus
}

func newStudioFixture(ai CopyGenerator) *studioFixture {
	f := &studioFixture{
		campaigns: repositories.NewCampaignRepo(),
		creatives: repositories.NewCreativeRepo(),
		activity:  repositories.NewActivityRepo(),
		bus:       events.NewMemoryBus(zap.NewNop()),
	}
	f.svc = NewStudioService(f.campaigns, f.creatives, f.activity, ai, f.bus, zap.NewNop())
	return f
}

func (f *studioFixture) seedCampaign(platforms ...models.Platform) *models.Campaign {
	c := &models.Campaign{
		ID:             models.NewCampaignID(),
		Name:           "Summer Sprint",
		Advertiser:     models.BrandNike,
		Status:         models.CampaignStatusDraft,
		Platforms:      platforms,
		Objective:      "Drive Sales",
		TargetAudience: "Runners",
	}
	f.campaigns.Create(c)
	return c
}

func TestGenerateOneAssetPerPlatform(t *testing.T) {
	f := newStudioFixture(&stubAI{enabled: true})
	campaign := f.seedCampaign(models.PlatformAmazonDSP, models.PlatformWalmartConnect)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(outcome.Assets) != 2 {
		t.Fatalf("assets = %d, want 2", len(outcome.Assets))
	}
	if outcome.Failures != nil {
		t.Errorf("failures = %v, want none", outcome.Failures)
	}

	seen := map[models.Platform]bool{}
	for _, a := range outcome.Assets {
		if a.CampaignID != campaign.ID {
			t.Errorf("asset %s campaign = %q", a.ID, a.CampaignID)
		}
		if a.Status != models.AssetStatusGenerated {
			t.Errorf("asset %s status = %q", a.ID, a.Status)
		}
		if a.ComplianceScore != defaultComplianceScore {
			t.Errorf("asset %s score = %d", a.ID, a.ComplianceScore)
		}
		if !strings.Contains(a.ImageURL, "image.pollinations.ai/prompt/") {
			t.Errorf("asset %s image url = %q", a.ID, a.ImageURL)
		}
		seen[a.Platform] = true
	}
	if !seen[models.PlatformAmazonDSP] || !seen[models.PlatformWalmartConnect] {
		t.Errorf("platforms covered = %v", seen)
	}

	stored := f.creatives.ListByCampaign(campaign.ID)
	if len(stored) != 2 {
		t.Errorf("stored assets = %d, want 2", len(stored))
	}

	log := f.activity.List()
	if len(log) != 1 || log[0].Text != "Generated 2 new creative assets" {
		t.Errorf("activity = %+v", log)
	}
}

func TestGeneratePartialFailureKeepsSurvivors(t *testing.T) {
	ai := &stubAI{
		enabled: true,
		copyErr: map[models.Platform]error{
			models.PlatformInstacart: errors.New("quota exceeded"),
		},
	}
	f := newStudioFixture(ai)
	campaign := f.seedCampaign(models.PlatformAmazonDSP, models.PlatformInstacart)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if len(outcome.Assets) != 1 || outcome.Assets[0].Platform != models.PlatformAmazonDSP {
		t.Fatalf("assets = %+v, want one for Amazon DSP", outcome.Assets)
	}
	if msg, ok := outcome.Failures[models.PlatformInstacart]; !ok || !strings.Contains(msg, "quota exceeded") {
		t.Errorf("failures = %v", outcome.Failures)
	}
	if len(f.creatives.ListByCampaign(campaign.ID)) != 1 {
		t.Errorf("stored = %d, want 1", len(f.creatives.ListByCampaign(campaign.ID)))
	}
}

func TestGenerateAllPlatformsFailed(t *testing.T) {
	ai := &stubAI{
		enabled: true,
		copyErr: map[models.Platform]error{
			models.PlatformAmazonDSP: errors.New("down"),
		},
	}
	f := newStudioFixture(ai)
	campaign := f.seedCampaign(models.PlatformAmazonDSP)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err == nil {
		t.Fatal("want error when every platform fails")
	}
	if outcome == nil || len(outcome.Assets) != 0 {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(f.creatives.ListByCampaign(campaign.ID)) != 0 {
		t.Error("assets were stored despite total failure")
	}
	if len(f.activity.List()) != 0 {
		t.Error("activity logged despite total failure")
	}
}

func TestGenerateAppliesCopyDefaults(t *testing.T) {
	ai := &stubAI{
		enabled: true,
		copy: map[models.Platform]*AdCopy{
			models.PlatformTargetRoundel: {},
		},
	}
	f := newStudioFixture(ai)
	campaign := f.seedCampaign(models.PlatformTargetRoundel)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	asset := outcome.Assets[0]
	if asset.Headline != defaultHeadline || asset.Description != defaultDescription || asset.CTA != defaultCTA {
		t.Errorf("defaults not applied: %+v", asset)
	}
}

func TestGenerateCarriesDegradedCompliance(t *testing.T) {
	ai := &stubAI{
		enabled: true,
		compliance: map[models.Platform]ComplianceResult{
			models.PlatformAmazonDSP: {Score: 0, Issues: []string{"AI Validation Failed"}},
		},
	}
	f := newStudioFixture(ai)
	campaign := f.seedCampaign(models.PlatformAmazonDSP)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	asset := outcome.Assets[0]
	if asset.ComplianceScore != 0 {
		t.Errorf("score = %d, want 0", asset.ComplianceScore)
	}
	if len(asset.ComplianceIssues) != 1 || asset.ComplianceIssues[0] != "AI Validation Failed" {
		t.Errorf("issues = %v", asset.ComplianceIssues)
	}
	// A degraded score still yields a stored asset.
	if len(f.creatives.ListByCampaign(campaign.ID)) != 1 {
		t.Error("degraded asset was not stored")
	}
}

func TestGenerateGuards(t *testing.T) {
	f := newStudioFixture(&stubAI{enabled: true})

	if _, err := f.svc.Generate(context.Background(), "c-0-missing"); err == nil {
		t.Error("want error for unknown campaign")
	}

	empty := f.seedCampaign()
	if _, err := f.svc.Generate(context.Background(), empty.ID); err == nil {
		t.Error("want error for campaign with no platforms")
	}

	disabled := newStudioFixture(&stubAI{enabled: false})
	campaign := disabled.seedCampaign(models.PlatformAmazonDSP)
	if _, err := disabled.svc.Generate(context.Background(), campaign.ID); !errors.Is(err, ErrAIUnavailable) {
		t.Errorf("err = %v, want ErrAIUnavailable", err)
	}
}

func TestUpdateAssetApprovalLogsActivity(t *testing.T) {
	f := newStudioFixture(&stubAI{enabled: true})
	campaign := f.seedCampaign(models.PlatformAmazonDSP)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	assetID := outcome.Assets[0].ID

	received := make(chan events.Event, 4)
	f.bus.Subscribe(context.Background(), events.StreamDashboard, func(e events.Event) {
		received <- e
	})

	approved := models.AssetStatusApproved
	asset, err := f.svc.UpdateAsset(context.Background(), assetID, repositories.CreativePatch{Status: &approved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if asset.Status != models.AssetStatusApproved {
		t.Errorf("status = %q", asset.Status)
	}

	log := f.activity.List()
	if len(log) != 2 || log[0].Text != "Creative asset approved" {
		t.Errorf("activity = %+v", log)
	}

	select {
	case e := <-received:
		if e.Type != events.EventAssetUpdated {
			t.Errorf("event type = %q", e.Type)
		}
	default:
		t.Error("no event published for approval")
	}
}

func TestUpdateAssetEditIsSilent(t *testing.T) {
	f := newStudioFixture(&stubAI{enabled: true})
	campaign := f.seedCampaign(models.PlatformAmazonDSP)

	outcome, err := f.svc.Generate(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	before := len(f.activity.List())

	headline := "Rewritten Headline"
	asset, err := f.svc.UpdateAsset(context.Background(), outcome.Assets[0].ID, repositories.CreativePatch{Headline: &headline})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if asset.Headline != "Rewritten Headline" {
		t.Errorf("headline = %q", asset.Headline)
	}
	if len(f.activity.List()) != before {
		t.Error("copy edit logged activity")
	}
}

func TestUpdateAssetRejectsBadStatus(t *testing.T) {
	f := newStudioFixture(&stubAI{enabled: true})
	bogus := "Archived"
	if _, err := f.svc.UpdateAsset(context.Background(), "asset-x", repositories.CreativePatch{Status: &bogus}); err == nil {
		t.Error("want error for invalid status")
	}
}
