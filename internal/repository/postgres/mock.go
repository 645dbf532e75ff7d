package postgres

import (
	"context"
	"sync"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// MockRepository implements domain.ForecastRepository for testing/demo mode.
// It keeps the most recent forecasts in memory.
type MockRepository struct {
	mu        sync.Mutex
	limit     int
	forecasts []domain.Forecast
}

// NewMockRepository creates a new mock repository holding up to limit forecasts
func NewMockRepository(limit int) *MockRepository {
	if limit <= 0 {
		limit = 100
	}
	return &MockRepository{limit: limit}
}

// SaveForecast appends the forecast, dropping the oldest once full
func (r *MockRepository) SaveForecast(ctx context.Context, f domain.Forecast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.forecasts = append(r.forecasts, f)
	if len(r.forecasts) > r.limit {
		r.forecasts = r.forecasts[len(r.forecasts)-r.limit:]
	}
	return nil
}

// Forecasts returns the stored forecasts, oldest first
func (r *MockRepository) Forecasts() []domain.Forecast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Forecast(nil), r.forecasts...)
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
