// Package handlers contains the HTTP handlers of the analytics API.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/pipeline"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/services"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/subjects"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Services
	subjectService    *services.SubjectService
	vitalsService     *services.VitalsService
	analyticsService  *services.AnalyticsService
	monitoringService *services.MonitoringService
}

// New creates a new handler instance
func New(
	logger *logging.Logger,
	cfg config.PipelineConfig,
	vitalsStore vitals.Store,
	subjectStore subjects.Store,
	publisher queue.Publisher,
) *Handler {
	pipe := pipeline.New(cfg, logger)

	subjectService := services.NewSubjectService(logger, subjectStore)
	vitalsService := services.NewVitalsService(logger, vitalsStore, publisher)
	analyticsService := services.NewAnalyticsService(logger, cfg, pipe, vitalsStore, subjectService)
	monitoringService := services.NewMonitoringService(logger, vitalsStore, subjectStore)

	return &Handler{
		logger:            logger,
		subjectService:    subjectService,
		vitalsService:     vitalsService,
		analyticsService:  analyticsService,
		monitoringService: monitoringService,
	}
}

// subjectID parses the :id route parameter. The returned fiber error is
// rendered by the app's error handler, as are service errors returned
// directly from handlers.
func subjectID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "subject id must be a positive integer")
	}
	return id, nil
}
