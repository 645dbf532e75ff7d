package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

func TestNewForecastRow(t *testing.T) {
	f := domain.Forecast{
		Concentrations: domain.PredictionResult{domain.PM25: 24.5, domain.CO: 0.4},
		SubIndices:     domain.SubIndexResult{domain.PM25: 41, domain.CO: 20},
		OutOfRange:     []domain.Pollutant{domain.CO},
	}

	row, err := newForecastRow(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"PM2.5": 24.5, "CO": 0.4}`, row.concentrations)
	assert.JSONEq(t, `{"PM2.5": 41, "CO": 20}`, row.subIndices)
	assert.Equal(t, []string{"CO"}, row.outOfRange)
}

func TestNewForecastRow_NoOutOfRange(t *testing.T) {
	row, err := newForecastRow(domain.Forecast{})
	require.NoError(t, err)
	assert.NotNil(t, row.outOfRange)
	assert.Empty(t, row.outOfRange)
}

func TestMockRepository(t *testing.T) {
	repo := NewMockRepository(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.SaveForecast(ctx, domain.Forecast{ID: fmt.Sprint(i)}))
	}

	got := repo.Forecasts()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.NoError(t, repo.Health(ctx))
}

func TestMockRepository_DefaultLimit(t *testing.T) {
	repo := NewMockRepository(0)
	for i := 0; i < 150; i++ {
		require.NoError(t, repo.SaveForecast(context.Background(), domain.Forecast{}))
	}
	assert.Len(t, repo.Forecasts(), 100)
}
