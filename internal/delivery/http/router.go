package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcity/aqi-forecast/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, forecastSvc *service.ForecastService, checks map[string]HealthChecker) {
	handler := NewHandler(forecastSvc, checks)

	// Health check and metrics
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Forecast endpoints
		api.Get("/forecast", handler.GetForecast)
		api.Get("/forecast/range", handler.GetForecastRange)
		api.Get("/report", handler.GetReport)

		// Reference data
		api.Get("/scale", handler.GetScale)
		api.Get("/pollutants", handler.GetPollutants)
	}
}
