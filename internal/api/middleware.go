package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/security"
)

// RequestMetrics counts every request by its route pattern so ids never become labels.
func (handler *Handler) RequestMetrics(c *fiber.Ctx) error {
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	route := "unmatched"
	if matched := c.Route(); matched != nil && matched.Path != "/" {
		route = matched.Path
	}
	handler.metrics.RecordHTTPRequest(c.Method(), route, status)
	return err
}

// AuthRequired is a no-op until a secret key is configured.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if !handler.auth.Enabled() {
		return c.Next()
	}

	raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := security.ParseToken(handler.auth.SecretKey, raw, handler.now()); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
