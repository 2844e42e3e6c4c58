package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	summary, err := handler.export.BuildSummary(c.UserContext())
	if err != nil {
		return handler.serviceError(c, "build export", err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	now := handler.currentTime()
	document, err := handler.export.BuildDocument(c.UserContext(), now)
	if err != nil {
		return handler.serviceError(c, "build export", err)
	}

	serialized, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	rows, err := handler.export.BuildCSVRows(c.UserContext())
	if err != nil {
		return handler.serviceError(c, "build export", err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.currentTime(), "csv"))
	return c.Send(output.Bytes())
}
