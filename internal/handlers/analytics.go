package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ProcessFeatures handles POST /v1/subjects/:id/features/process
func (h *Handler) ProcessFeatures(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	days := c.QueryInt("days", 0)
	resp, err := h.analyticsService.ProcessFeatures(c.Context(), id, days)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Forecast handles GET /v1/subjects/:id/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	horizon := c.QueryInt("hours", 0)
	resp, err := h.analyticsService.Forecast(c.Context(), id, horizon)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Alerts handles GET /v1/subjects/:id/alerts
func (h *Handler) Alerts(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	alerts, err := h.analyticsService.Alerts(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"subject_id": id,
		"alerts":     alerts,
		"count":      len(alerts),
	})
}

// Summary handles GET /v1/subjects/:id/summary
func (h *Handler) Summary(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	resp, err := h.analyticsService.Summary(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
