package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/models"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.profile.Get(c.UserContext())
	if err != nil {
		return handler.serviceError(c, "load profile", err)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := handler.profile.Save(c.UserContext(), profile)
	if err != nil {
		return handler.serviceError(c, "save profile", err)
	}
	return c.JSON(saved)
}
