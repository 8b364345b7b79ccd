package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adpulse/backend/internal/config"
	"github.com/adpulse/backend/internal/db"
	"github.com/adpulse/backend/internal/events"
	apphttp "github.com/adpulse/backend/internal/http"
	"github.com/adpulse/backend/internal/http/handlers"
	"github.com/adpulse/backend/internal/repositories"
	"github.com/adpulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional; it only backs the AI endpoint rate limiter.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn("redis unavailable, AI rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Repositories
	campaignRepo := repositories.NewCampaignRepo()
	creativeRepo := repositories.NewCreativeRepo()
	activityRepo := repositories.NewActivityRepo()

	// Events
	bus := events.NewMemoryBus(log)

	// Services
	gemini := services.NewGeminiClient(cfg, log)
	campaignService := services.NewCampaignService(campaignRepo, activityRepo, bus, log)
	wizardService := services.NewWizardService(gemini, log)
	studioService := services.NewStudioService(campaignRepo, creativeRepo, activityRepo, gemini, bus, log)
	workflowService := services.NewWorkflowService(campaignRepo, activityRepo, bus, log)

	// Handlers
	wizardHandler := handlers.NewWizardHandler(wizardService, campaignService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, workflowService, log)
	studioHandler := handlers.NewStudioHandler(studioService, log)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	wsHub := handlers.NewWSHub(bus, log)

	// Start WS hub
	wsHub.Start(ctx)

	if cfg.SeedDemoData {
		seedDemoData(campaignRepo, activityRepo, log)
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, wizardHandler, campaignHandler, studioHandler, activityHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
