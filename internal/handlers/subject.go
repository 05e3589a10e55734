package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// CreateSubject handles POST /v1/subjects
func (h *Handler) CreateSubject(c *fiber.Ctx) error {
	var req models.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	subject, err := h.subjectService.Create(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}

// ListSubjects handles GET /v1/subjects
func (h *Handler) ListSubjects(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	list, err := h.subjectService.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetSubject handles GET /v1/subjects/:id
func (h *Handler) GetSubject(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return err
	}

	subject, err := h.subjectService.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(subject)
}
