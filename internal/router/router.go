// Package router wires the Fiber app: middlewares, routes and the error
// handler.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/handlers"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/middleware"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/subjects"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// Setup configures all routes and middlewares
func Setup(
	app *fiber.App,
	logger *logging.Logger,
	vitalsStore vitals.Store,
	subjectStore subjects.Store,
	publisher queue.Publisher,
	cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, cfg.Pipeline, vitalsStore, subjectStore, publisher)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Subject Registry Routes
	v1.Post("/subjects", h.CreateSubject)
	v1.Get("/subjects", h.ListSubjects)
	v1.Get("/subjects/:id", h.GetSubject)

	// Vitals Ingest and Retrieval Routes
	v1.Post("/subjects/:id/vitals", h.WriteVitals)
	v1.Get("/subjects/:id/vitals", h.GetVitals)

	// Analytics Routes
	v1.Post("/subjects/:id/features/process", h.ProcessFeatures)
	v1.Get("/subjects/:id/forecast", h.Forecast)
	v1.Get("/subjects/:id/alerts", h.Alerts)
	v1.Get("/subjects/:id/summary", h.Summary)

	// Monitoring Routes
	v1.Get("/monitoring/active-subjects", h.ActiveSubjects)
	v1.Get("/system/stats", h.SystemStats)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(
	logger *logging.Logger,
	vitalsStore vitals.Store,
	subjectStore subjects.Store,
	publisher queue.Publisher,
	cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Health Analytics API",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, vitalsStore, subjectStore, publisher, cfg)

	return app
}
