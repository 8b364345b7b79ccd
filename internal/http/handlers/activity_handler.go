package handlers

import (
	"github.com/adpulse/backend/internal/http/dto"
	"github.com/adpulse/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
)

type ActivityHandler struct {
	activityRepo *repositories.ActivityRepo
}

func NewActivityHandler(activityRepo *repositories.ActivityRepo) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// ListActivity returns the feed newest first.
func (h *ActivityHandler) ListActivity(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.activityRepo.List()})
}
