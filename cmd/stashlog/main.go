package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/stashlog/internal/api"
	"github.com/terraincognita07/stashlog/internal/cli"
	"github.com/terraincognita07/stashlog/internal/config"
	"github.com/terraincognita07/stashlog/internal/db"
	"github.com/terraincognita07/stashlog/internal/enrichment"
	"github.com/terraincognita07/stashlog/internal/logging"
	"github.com/terraincognita07/stashlog/internal/metrics"
	"github.com/terraincognita07/stashlog/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	root := cli.NewRootCommand(cli.Runner{Serve: serve, Seed: seed})
	err := root.ExecuteContext(sigCtx)
	stopSignals()
	if err != nil {
		log.Fatalf("stashlog: %v", err)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	appLogger := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	time.Local = cfg.Location

	backend, closeStore, err := db.OpenStore(storeOptions(cfg.Store))
	if err != nil {
		return fmt.Errorf("store init failed: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn(context.Background(), "close store", "error", err)
		}
	}()

	registry, err := metrics.New()
	if err != nil {
		return fmt.Errorf("metrics init failed: %w", err)
	}

	app, err := newApp(cfg, backend, registry, appLogger)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error(context.Background(), "server shutdown failed", "error", err)
		}
	}()

	appLogger.Info(ctx, "stashlog listening",
		"addr", "http://0.0.0.0:"+cfg.Port,
		"store", cfg.Store.Driver,
		"tz", cfg.Location.String(),
		"auth", cfg.Auth.Enabled(),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func seed(ctx context.Context, cfg config.Config) (int, error) {
	appLogger := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)

	backend, closeStore, err := db.OpenStore(storeOptions(cfg.Store))
	if err != nil {
		return 0, fmt.Errorf("store init failed: %w", err)
	}
	defer func() {
		_ = closeStore()
	}()

	products := services.NewProductService(services.NewStashStore(backend, appLogger))
	return products.SeedSamples(ctx, time.Now().In(cfg.Location))
}

func newApp(cfg config.Config, backend services.KeyValueStore, registry *metrics.Metrics, appLogger logging.Logger) (*fiber.App, error) {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	stash := services.NewStashStore(backend, appLogger.With("component", "store"))
	enricher := newEnricher(cfg.Enrichment, registry, appLogger)
	if enricher == nil {
		appLogger.Info(context.Background(), "enrichment disabled, set GEMINI_API_KEY to enable it")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Products:   services.NewProductService(stash),
		Sessions:   services.NewSessionService(stash),
		Profile:    services.NewProfileService(stash),
		Analytics:  services.NewAnalyticsService(stash, location),
		Enrichment: services.NewEnrichmentService(enricher),
		Export:     services.NewExportService(stash, location),
		Metrics:    registry,
		Logger:     appLogger.With("component", "api"),
		Location:   location,
		Auth: api.AuthSettings{
			SecretKey:      []byte(cfg.Auth.SecretKey),
			PassphraseHash: cfg.Auth.PassphraseHash,
			TokenTTL:       cfg.Auth.TokenTTL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Stashlog",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.RequestMetrics)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, nil
}

// newEnricher returns nil when enrichment is switched off so the service
// sees a nil interface rather than a typed nil client.
func newEnricher(cfg config.EnrichmentConfig, registry *metrics.Metrics, appLogger logging.Logger) enrichment.Enricher {
	if cfg.Disabled || cfg.APIKey == "" {
		return nil
	}
	return enrichment.NewGeminiClient(enrichment.Config{
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		CacheTTL:          cfg.CacheTTL,
		RequestsPerMinute: cfg.RequestsPerMin,
	},
		enrichment.WithLogger(appLogger.With("component", "enrichment")),
		enrichment.WithRecorder(registry),
	)
}

func storeOptions(cfg config.StoreConfig) db.StoreOptions {
	return db.StoreOptions{
		Driver:     cfg.Driver,
		SQLitePath: cfg.SQLitePath,
		MySQLDSN:   cfg.MySQLDSN,
		Redis: db.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		},
	}
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
