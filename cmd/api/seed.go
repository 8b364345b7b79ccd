package main

import (
	"time"

	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"go.uber.org/zap"
)

// seedDemoData loads the demo campaigns so the dashboard is not empty on a
// fresh start. Insertion order is reversed because the store lists newest
// first and the demo set should display in its written order.
func seedDemoData(campaignRepo *repositories.CampaignRepo, activityRepo *repositories.ActivityRepo, log *zap.Logger) {
	now := time.Now()
	demo := []*models.Campaign{
		{
			ID:             "c-101",
			Name:           "Summer Sprint Sale",
			Advertiser:     models.BrandNike,
			Budget:         50000,
			StartDate:      "2024-06-01",
			EndDate:        "2024-06-30",
			Objective:      "Drive Sales",
			Platforms:      []models.Platform{models.PlatformAmazonDSP, models.PlatformWalmartConnect},
			TargetAudience: "Active runners aged 25-40",
			Status:         models.CampaignStatusLive,
			Progress:       65,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "c-102",
			Name:           "Zero Sugar Launch",
			Advertiser:     models.BrandCocaCola,
			Budget:         120000,
			StartDate:      "2024-07-15",
			EndDate:        "2024-08-15",
			Objective:      "Brand Awareness",
			Platforms:      []models.Platform{models.PlatformInstacart, models.PlatformTargetRoundel},
			TargetAudience: "Health-conscious soda drinkers",
			Status:         models.CampaignStatusPendingApproval,
			Progress:       0,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "c-103",
			Name:           "Galaxy S24 Promo",
			Advertiser:     models.BrandSamsung,
			Budget:         250000,
			StartDate:      "2024-05-01",
			EndDate:        "2024-05-31",
			Objective:      "Conversions",
			Platforms:      []models.Platform{models.PlatformAmazonDSP},
			TargetAudience: "Tech enthusiasts",
			Status:         models.CampaignStatusApproved,
			Progress:       100,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	for i := len(demo) - 1; i >= 0; i-- {
		campaignRepo.Create(demo[i])
	}

	activityRepo.Append(&models.ActivityEntry{
		ID:        models.NewActivityID(),
		Text:      "System initialized",
		Timestamp: now,
		Severity:  models.SeverityInfo,
	})

	log.Info("seeded demo data", zap.Int("campaigns", len(demo)))
}
