package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/models"
)

type enrichResponse struct {
	Found   bool           `json:"found"`
	Product models.Product `json:"product"`
}

// EnrichProduct never fails on enrichment errors; the draft comes back unchanged with found=false.
func (handler *Handler) EnrichProduct(c *fiber.Ctx) error {
	var draft models.Product
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, found := handler.enrichment.EnrichDraft(c.UserContext(), draft)
	return c.JSON(enrichResponse{Found: found, Product: product})
}
