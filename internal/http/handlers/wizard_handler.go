package handlers

import (
	"errors"

	"github.com/adpulse/backend/internal/http/dto"
	"github.com/adpulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WizardHandler struct {
	wizardService   *services.WizardService
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewWizardHandler(wizardService *services.WizardService, campaignService *services.CampaignService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, campaignService: campaignService, log: log}
}

func (h *WizardHandler) CreateSession(c *fiber.Ctx) error {
	session := h.wizardService.CreateSession()
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: session})
}

func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.wizardService.GetSession(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session})
}

func (h *WizardHandler) SubmitMessage(c *fiber.Ctx) error {
	var req dto.SubmitMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	session, err := h.wizardService.Submit(c.Context(), c.Params("id"), req.Text)
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	case errors.Is(err, services.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "message text is empty"})
	case errors.Is(err, services.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "a message is already being processed"})
	case err != nil:
		h.log.Error("wizard submit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: session})
}

// Finalize turns the session draft into a stored campaign.
func (h *WizardHandler) Finalize(c *fiber.Ctx) error {
	campaign, err := h.wizardService.Finalize(c.Params("id"))
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	case errors.Is(err, services.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "a message is already being processed"})
	case errors.Is(err, services.ErrDraftIncomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: "draft needs a name and an advertiser before launch"})
	case err != nil:
		h.log.Error("wizard finalize failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	h.campaignService.Create(c.Context(), campaign)
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *WizardHandler) Reset(c *fiber.Ctx) error {
	session, err := h.wizardService.Reset(c.Params("id"))
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "session not found"})
	case errors.Is(err, services.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "a message is already being processed"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session})
}
