package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/models"
)

func (handler *Handler) ListSessions(c *fiber.Ctx) error {
	sessions, err := handler.sessions.List(c.UserContext(), c.Query("product_id"))
	if err != nil {
		return handler.serviceError(c, "list sessions", err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) ListProductSessions(c *fiber.Ctx) error {
	sessions, err := handler.sessions.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "list sessions", err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) LogSession(c *fiber.Ctx) error {
	var draft models.Session
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return handler.logSession(c, draft)
}

// LogProductSession takes the product from the path and ignores any product_id in the body.
func (handler *Handler) LogProductSession(c *fiber.Ctx) error {
	var draft models.Session
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	draft.ProductID = c.Params("id")
	return handler.logSession(c, draft)
}

func (handler *Handler) logSession(c *fiber.Ctx, draft models.Session) error {
	session, err := handler.sessions.Log(c.UserContext(), draft, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, "save session", err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}
