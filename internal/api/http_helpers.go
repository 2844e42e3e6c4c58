package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinels onto HTTP statuses. Anything unknown is a
// storage failure and is logged and counted before answering 500.
func (handler *Handler) serviceError(c *fiber.Ctx, operation string, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return apiError(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, services.ErrProductNameRequired),
		errors.Is(err, services.ErrBrandNameRequired),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrSessionProductRequired),
		errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrInvalidMood):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.logger.Error(c.UserContext(), "request failed", "operation", operation, "error", err)
	handler.metrics.RecordStoreError(operation)
	return apiError(c, fiber.StatusInternalServerError, "failed to "+operation)
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("stashlog-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
