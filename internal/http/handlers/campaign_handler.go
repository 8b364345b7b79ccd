package handlers

import (
	"errors"

	"github.com/adpulse/backend/internal/http/dto"
	"github.com/adpulse/backend/internal/models"
	"github.com/adpulse/backend/internal/repositories"
	"github.com/adpulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	workflowService *services.WorkflowService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, workflowService *services.WorkflowService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, workflowService: workflowService, log: log}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.campaignService.List()})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.campaignService.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	patch := repositories.CampaignPatch{
		Name:           req.Name,
		Budget:         req.Budget,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Objective:      req.Objective,
		TargetAudience: req.TargetAudience,
		Status:         req.Status,
		Progress:       req.Progress,
	}
	if req.Advertiser != nil {
		brand := models.Brand(*req.Advertiser)
		patch.Advertiser = &brand
	}
	if req.Platforms != nil {
		platforms := make([]models.Platform, 0, len(req.Platforms))
		for _, p := range req.Platforms {
			platforms = append(platforms, models.Platform(p))
		}
		patch.Platforms = platforms
	}

	campaign, err := h.campaignService.Update(c.Context(), c.Params("id"), patch)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

// Transition applies a workflow action named in the path.
func (h *CampaignHandler) Transition(c *fiber.Ctx) error {
	campaign, err := h.workflowService.Transition(c.Context(), c.Params("id"), c.Params("action"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetWorkflow(c *fiber.Ctx) error {
	timeline, err := h.workflowService.Timeline(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: timeline})
}

func (h *CampaignHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.campaignService.Stats()})
}
