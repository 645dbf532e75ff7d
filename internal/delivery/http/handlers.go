package http

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/aqi-forecast/internal/aqi"
	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/internal/report"
	"github.com/smartcity/aqi-forecast/internal/service"
)

// HealthChecker is a dependency whose connectivity is reported by /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	forecastSvc *service.ForecastService
	checks      map[string]HealthChecker
}

// NewHandler creates a new handler
func NewHandler(forecastSvc *service.ForecastService, checks map[string]HealthChecker) *Handler {
	return &Handler{
		forecastSvc: forecastSvc,
		checks:      checks,
	}
}

// HealthCheck returns service health status along with its dependencies
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := fiber.Map{}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			status = "degraded"
			deps[name] = err.Error()
			continue
		}
		deps[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"service":      "aqi-forecast",
		"version":      "1.0.0",
		"city":         h.forecastSvc.City(),
		"dependencies": deps,
	})
}

// GetForecast returns the AQI forecast for ?date= (today when omitted)
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	date := c.Query("date", h.forecastSvc.Today())

	forecast, err := h.forecastSvc.Predict(c.UserContext(), date)
	if err != nil {
		return err
	}

	return c.JSON(domain.ForecastResponse{
		Data:    forecast,
		Success: true,
	})
}

// GetForecastRange returns one forecast per day between ?from= and ?to=.
// With ?format=parquet the forecasts are downloaded as a Parquet file.
func (h *Handler) GetForecastRange(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		return fiber.NewError(fiber.StatusBadRequest, "from and to are required")
	}

	forecasts, err := h.forecastSvc.PredictRange(c.UserContext(), from, to)
	if err != nil {
		return err
	}

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(fiber.Map{
			"success": true,
			"data":    forecasts,
			"count":   len(forecasts),
		})
	case "parquet":
		var buf bytes.Buffer
		if err := report.Parquet(&buf, forecasts); err != nil {
			return err
		}
		c.Attachment(fmt.Sprintf("%s_AQI_%s_%s.parquet", h.forecastSvc.City(), from, to))
		c.Set(fiber.HeaderContentType, "application/vnd.apache.parquet")
		return c.Send(buf.Bytes())
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be json or parquet")
	}
}

// GetReport downloads the plain-text report for ?date=
func (h *Handler) GetReport(c *fiber.Ctx) error {
	date := c.Query("date", h.forecastSvc.Today())

	forecast, err := h.forecastSvc.Predict(c.UserContext(), date)
	if err != nil {
		return err
	}

	c.Attachment(report.Filename(h.forecastSvc.City()))
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(report.Text(forecast, h.forecastSvc.City()))
}

// GetScale returns the AQI category legend
func (h *Handler) GetScale(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    aqi.Scale(),
	})
}

type pollutantInfo struct {
	Name        domain.Pollutant `json:"name"`
	Unit        string           `json:"unit"`
	Breakpoints []aqi.Range      `json:"breakpoints"`
}

// GetPollutants lists the modelled pollutants with their breakpoint tables
func (h *Handler) GetPollutants(c *fiber.Ctx) error {
	pollutants := domain.Pollutants()
	data := make([]pollutantInfo, 0, len(pollutants))
	for _, p := range pollutants {
		data = append(data, pollutantInfo{
			Name:        p,
			Unit:        p.Unit(),
			Breakpoints: aqi.Breakpoints(p),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
