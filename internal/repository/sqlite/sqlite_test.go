package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

func openMemory(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleForecast() domain.Forecast {
	return domain.Forecast{
		ID:             "0b6e2d7e-4f0c-4d4a-9a57-6f1f1c1d2e3f",
		City:           "Mumbai",
		Date:           "15-03-2024",
		Concentrations: domain.PredictionResult{domain.PM25: 620, domain.NO2: 130},
		SubIndices:     domain.SubIndexResult{domain.PM25: 500, domain.NO2: 150},
		AQIResult:      domain.AQIResult{AQI: 500, Category: domain.CategorySevere},
		OutOfRange:     []domain.Pollutant{domain.PM25},
		GeneratedAt:    time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestSaveForecast(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()
	f := sampleForecast()

	require.NoError(t, repo.SaveForecast(ctx, f))

	var (
		city, date, category, conc, sub, oor string
		aqi                                  int
		ms                                   int64
	)
	err := repo.db.QueryRowContext(ctx, `
		SELECT city, forecast_date, aqi, category, concentrations_json, sub_indices_json, out_of_range, generated_at
		FROM forecast_logs WHERE id = ?`, f.ID,
	).Scan(&city, &date, &aqi, &category, &conc, &sub, &oor, &ms)
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", city)
	assert.Equal(t, "15-03-2024", date)
	assert.Equal(t, 500, aqi)
	assert.Equal(t, "Severe", category)
	assert.Equal(t, "PM2.5", oor)
	assert.Equal(t, f.GeneratedAt, time.UnixMilli(ms).UTC())

	var subIndices domain.SubIndexResult
	require.NoError(t, json.Unmarshal([]byte(sub), &subIndices))
	assert.Equal(t, f.SubIndices, subIndices)

	var concentrations domain.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(conc), &concentrations))
	assert.Equal(t, f.Concentrations, concentrations)
}

func TestSaveForecast_DuplicateID(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveForecast(ctx, sampleForecast()))
	err := repo.SaveForecast(ctx, sampleForecast())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: failed to save forecast")
}

func TestHealth(t *testing.T) {
	repo := openMemory(t)
	assert.NoError(t, repo.Health(context.Background()))

	require.NoError(t, repo.Close())
	assert.Error(t, repo.Health(context.Background()))
}
