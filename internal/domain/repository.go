package domain

import (
	"context"
)

// ForecastRepository defines the audit log for served forecasts.
// This follows the Dependency Inversion Principle - domain defines the interface
type ForecastRepository interface {
	// SaveForecast persists a served forecast
	SaveForecast(ctx context.Context, f Forecast) error

	// Health checks database connectivity
	Health(ctx context.Context) error
}

// ForecastPublisher announces served forecasts to downstream consumers
type ForecastPublisher interface {
	PublishForecast(ctx context.Context, f Forecast) error
}
