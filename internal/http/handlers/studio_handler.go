package handlers

import (
	"errors"

	"github.com/adpulse/backend/internal/http/dto"
	"github.com/adpulse/backend/internal/repositories"
	"github.com/adpulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StudioHandler struct {
	studioService *services.StudioService
	log           *zap.Logger
}

func NewStudioHandler(studioService *services.StudioService, log *zap.Logger) *StudioHandler {
	return &StudioHandler{studioService: studioService, log: log}
}

// GenerateAssets runs the per-platform creative fan-out. A partially failed
// batch is still a 201: the response carries both the assets that made it and
// the per-platform failures.
func (h *StudioHandler) GenerateAssets(c *fiber.Ctx) error {
	outcome, err := h.studioService.Generate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrAIUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: "AI generation is not configured"})
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
		}
		if outcome != nil && len(outcome.Failures) > 0 {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: outcome})
}

func (h *StudioHandler) ListAssets(c *fiber.Ctx) error {
	assets := h.studioService.ListByCampaign(c.Params("id"))
	return c.JSON(dto.SuccessResponse{OK: true, Data: assets})
}

func (h *StudioHandler) UpdateAsset(c *fiber.Ctx) error {
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	asset, err := h.studioService.UpdateAsset(c.Context(), c.Params("id"), repositories.CreativePatch{
		Headline:    req.Headline,
		Description: req.Description,
		CTA:         req.CTA,
		Status:      req.Status,
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "asset not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: asset})
}
