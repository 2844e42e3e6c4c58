package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetAnalytics(c *fiber.Ctx) error {
	dashboard, err := handler.analytics.BuildDashboard(c.UserContext(), handler.currentTime())
	if err != nil {
		return handler.serviceError(c, "build analytics", err)
	}
	return c.JSON(dashboard)
}
