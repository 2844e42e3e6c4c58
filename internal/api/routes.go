package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/token", handler.IssueToken)

	products := api.Group("/products", handler.AuthRequired)
	products.Get("", handler.ListProducts)
	products.Get("/tags", handler.ListProductTags)
	products.Post("", handler.CreateProduct)
	products.Get("/:id", handler.GetProduct)
	products.Put("/:id", handler.UpdateProduct)
	products.Delete("/:id", handler.DeleteProduct)
	products.Get("/:id/sessions", handler.ListProductSessions)
	products.Post("/:id/sessions", handler.LogProductSession)

	sessions := api.Group("/sessions", handler.AuthRequired)
	sessions.Get("", handler.ListSessions)
	sessions.Post("", handler.LogSession)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)

	api.Get("/analytics", handler.AuthRequired, handler.GetAnalytics)
	api.Post("/enrich", handler.AuthRequired, handler.EnrichProduct)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}
