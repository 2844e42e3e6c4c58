package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/security"
)

type tokenRequest struct {
	Passphrase string `json:"passphrase"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (handler *Handler) IssueToken(c *fiber.Ctx) error {
	if !handler.auth.Enabled() || handler.auth.PassphraseHash == "" {
		return apiError(c, fiber.StatusNotFound, "access control is not configured")
	}

	key := clientKey(c)
	now := handler.now()
	if handler.tokenLimiter.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	var payload tokenRequest
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := security.CheckPassphrase(handler.auth.PassphraseHash, payload.Passphrase); err != nil {
		handler.tokenLimiter.recordFailure(key, now)
		handler.logger.Warn(c.UserContext(), "rejected access passphrase", "client", key)
		return apiError(c, fiber.StatusUnauthorized, "invalid passphrase")
	}
	handler.tokenLimiter.clear(key)

	token, expiresAt, err := security.IssueToken(handler.auth.SecretKey, handler.auth.TokenTTL, now)
	if err != nil {
		handler.logger.Error(c.UserContext(), "issue token", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(tokenResponse{Token: token, ExpiresAt: expiresAt})
}
