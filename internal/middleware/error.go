package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/services"
)

// statusForCode maps service error codes onto HTTP statuses. Unknown codes
// are treated as internal failures.
func statusForCode(code string) int {
	switch code {
	case "SUBJECT_NOT_FOUND", "NO_DATA":
		return fiber.StatusNotFound
	case "INVALID_SUBJECT_ID", "INVALID_REQUEST", "INVALID_READING",
		"INVALID_HORIZON", "EMPTY_BATCH", "BATCH_TOO_LARGE":
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error escaping a handler as the API error
// envelope. Service errors keep their code and map onto a status by class,
// fiber errors keep their status, anything else becomes a 500 without
// leaking its message.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "Internal Server Error",
		}

		var svcErr *services.ServiceError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &svcErr):
			status = statusForCode(svcErr.Code)
			detail = models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			detail.Code = "ERROR"
			detail.Message = fiberErr.Message
		}

		fields := []interface{}{
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		}
		if status >= 500 {
			logger.Error("Request failed", fields...)
		} else {
			logger.Warn("Request rejected", fields...)
		}

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
