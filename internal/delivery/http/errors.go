package http

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// StatusCode maps an error returned by a handler to its HTTP status
func StatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrInvalidDate):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrPredictionFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	message := err.Error()

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
	case code == fiber.StatusInternalServerError:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "Internal Server Error"
	case code == fiber.StatusBadGateway:
		// The cause may carry model service addresses; it stays in the log.
		slog.Error("model prediction failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = domain.ErrPredictionFailure.Error()
		var pe *domain.PollutantError
		if errors.As(err, &pe) {
			message = fmt.Sprintf("%s: %s", pe.Pollutant, message)
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
