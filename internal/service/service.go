package service

import (
	"github.com/smartcity/aqi-forecast/internal/domain"
)

// ForecastRepository is re-exported from domain for convenience
type ForecastRepository = domain.ForecastRepository

// ForecastPublisher is re-exported from domain for convenience
type ForecastPublisher = domain.ForecastPublisher
