package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// WriteVitals handles POST /v1/subjects/:id/vitals
func (h *Handler) WriteVitals(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	var req models.WriteVitalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	resp, err := h.vitalsService.Write(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetVitals handles GET /v1/subjects/:id/vitals
func (h *Handler) GetVitals(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	hours := c.QueryInt("hours", 24)
	resp, err := h.vitalsService.Fetch(c.Context(), id, hours)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
