package domain

import (
	"context"
	"time"
)

// DateFeatures is the feature vector the pollutant models are trained on.
// DayOfWeek counts from 0 (Monday) to 6 (Sunday).
type DateFeatures struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	Day       int `json:"day"`
	DayOfWeek int `json:"day_of_week"`
}

// PredictionResult holds the predicted concentration per pollutant
type PredictionResult map[Pollutant]float64

// SubIndexResult holds the 0-500 sub-index per pollutant
type SubIndexResult map[Pollutant]int

// Category is a named AQI severity bucket
type Category string

const (
	CategoryGood         Category = "Good"
	CategorySatisfactory Category = "Satisfactory"
	CategoryModerate     Category = "Moderate"
	CategoryPoor         Category = "Poor"
	CategoryVeryPoor     Category = "Very Poor"
	CategorySevere       Category = "Severe"
)

// AQIResult is the aggregated index and its category
type AQIResult struct {
	AQI      int      `json:"aqi"`
	Category Category `json:"category"`
}

// Forecast is the complete output of one prediction request
type Forecast struct {
	ID             string           `json:"id"`
	City           string           `json:"city"`
	Date           string           `json:"date"`
	Features       DateFeatures     `json:"features"`
	Concentrations PredictionResult `json:"concentrations"`
	SubIndices     SubIndexResult   `json:"sub_indices"`
	AQIResult
	Advisory    string      `json:"advisory"`
	OutOfRange  []Pollutant `json:"out_of_range,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ForecastResponse wraps a forecast with metadata
type ForecastResponse struct {
	Data    Forecast `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
}

// Model predicts the concentration of a single pollutant for a date
type Model interface {
	Predict(ctx context.Context, features DateFeatures) (float64, error)
}

// ModelFunc adapts a plain function to the Model interface
type ModelFunc func(ctx context.Context, features DateFeatures) (float64, error)

// Predict calls f
func (f ModelFunc) Predict(ctx context.Context, features DateFeatures) (float64, error) {
	return f(ctx, features)
}

// ModelSet binds each pollutant to its trained model
type ModelSet map[Pollutant]Model
