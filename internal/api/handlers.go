package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/logging"
	"github.com/terraincognita07/stashlog/internal/metrics"
	"github.com/terraincognita07/stashlog/internal/services"
)

const (
	tokenAttemptLimit  = 5
	tokenAttemptWindow = 15 * time.Minute
)

// AuthSettings switches on bearer authentication when SecretKey is set.
type AuthSettings struct {
	SecretKey      []byte
	PassphraseHash string
	TokenTTL       time.Duration
}

func (settings AuthSettings) Enabled() bool {
	return len(settings.SecretKey) > 0
}

type Dependencies struct {
	Products   *services.ProductService
	Sessions   *services.SessionService
	Profile    *services.ProfileService
	Analytics  *services.AnalyticsService
	Enrichment *services.EnrichmentService
	Export     *services.ExportService
	Metrics    *metrics.Metrics
	Logger     logging.Logger
	Location   *time.Location
	Auth       AuthSettings
	Now        func() time.Time
}

type Handler struct {
	products     *services.ProductService
	sessions     *services.SessionService
	profile      *services.ProfileService
	analytics    *services.AnalyticsService
	enrichment   *services.EnrichmentService
	export       *services.ExportService
	metrics      *metrics.Metrics
	logger       logging.Logger
	location     *time.Location
	auth         AuthSettings
	now          func() time.Time
	tokenLimiter *attemptLimiter
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Products == nil || deps.Sessions == nil || deps.Profile == nil {
		return nil, errors.New("product, session and profile services are required")
	}
	if deps.Analytics == nil || deps.Export == nil {
		return nil, errors.New("analytics and export services are required")
	}

	handler := &Handler{
		products:     deps.Products,
		sessions:     deps.Sessions,
		profile:      deps.Profile,
		analytics:    deps.Analytics,
		enrichment:   deps.Enrichment,
		export:       deps.Export,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		location:     deps.Location,
		auth:         deps.Auth,
		now:          deps.Now,
		tokenLimiter: newAttemptLimiter(tokenAttemptLimit, tokenAttemptWindow),
	}
	if handler.enrichment == nil {
		handler.enrichment = services.NewEnrichmentService(nil)
	}
	if handler.logger == nil {
		handler.logger = logging.Discard()
	}
	if handler.location == nil {
		handler.location = time.UTC
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	if handler.auth.TokenTTL <= 0 {
		handler.auth.TokenTTL = 30 * 24 * time.Hour
	}
	return handler, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
