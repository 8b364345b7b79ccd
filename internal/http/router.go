package http

import (
	"time"

	"github.com/adpulse/backend/internal/config"
	"github.com/adpulse/backend/internal/http/handlers"
	"github.com/adpulse/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	wizardHandler *handlers.WizardHandler,
	campaignHandler *handlers.CampaignHandler,
	studioHandler *handlers.StudioHandler,
	activityHandler *handlers.ActivityHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Meta
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/brands", metaHandler.GetBrands)
	api.Get("/meta/platforms", metaHandler.GetPlatforms)

	// The AI-backed routes carry a per-IP budget when redis is configured.
	var aiLimited fiber.Handler
	if rdb != nil {
		aiLimited = middleware.AIRateLimitMiddleware(rdb, cfg.AIRateLimitPerMin, time.Minute)
	} else {
		aiLimited = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Campaign wizard
	api.Post("/wizard/sessions", wizardHandler.CreateSession)
	api.Get("/wizard/sessions/:id", wizardHandler.GetSession)
	api.Post("/wizard/sessions/:id/messages", aiLimited, wizardHandler.SubmitMessage)
	api.Post("/wizard/sessions/:id/finalize", wizardHandler.Finalize)
	api.Post("/wizard/sessions/:id/reset", wizardHandler.Reset)

	// Campaigns
	api.Get("/campaigns", campaignHandler.ListCampaigns)
	api.Get("/campaigns/:id", campaignHandler.GetCampaign)
	api.Patch("/campaigns/:id", campaignHandler.UpdateCampaign)
	api.Post("/campaigns/:id/transitions/:action", campaignHandler.Transition)
	api.Get("/campaigns/:id/workflow", campaignHandler.GetWorkflow)

	// Creative studio
	api.Post("/campaigns/:id/assets/generate", aiLimited, studioHandler.GenerateAssets)
	api.Get("/campaigns/:id/assets", studioHandler.ListAssets)
	api.Patch("/assets/:id", studioHandler.UpdateAsset)

	// Dashboard
	api.Get("/dashboard/stats", campaignHandler.GetStats)
	api.Get("/activity", activityHandler.ListActivity)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
