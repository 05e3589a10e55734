package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ActiveSubjects handles GET /v1/monitoring/active-subjects
func (h *Handler) ActiveSubjects(c *fiber.Ctx) error {
	resp, err := h.monitoringService.ActiveSubjects(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SystemStats handles GET /v1/system/stats
func (h *Handler) SystemStats(c *fiber.Ctx) error {
	resp, err := h.monitoringService.SystemStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
