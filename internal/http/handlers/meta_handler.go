package handlers

import (
	"github.com/adpulse/backend/internal/http/dto"
	"github.com/adpulse/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) GetBrands(c *fiber.Ctx) error {
	brands := make([]dto.BrandInfo, 0, len(models.AllBrands))
	for _, b := range models.AllBrands {
		brands = append(brands, dto.BrandInfo{
			Name:       string(b),
			Guidelines: models.BrandGuidelines[b],
		})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: brands})
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	platforms := make([]dto.PlatformInfo, 0, len(models.AllPlatforms))
	for _, p := range models.AllPlatforms {
		platforms = append(platforms, dto.PlatformInfo{
			Name:  string(p),
			Rules: models.PlatformRules[p],
		})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: platforms})
}
