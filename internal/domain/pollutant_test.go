package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollutants_FixedOrder(t *testing.T) {
	assert.Equal(t, []Pollutant{PM25, PM10, NO2, NH3, SO2, CO, O3}, Pollutants())
}

func TestPollutants_ReturnsCopy(t *testing.T) {
	ps := Pollutants()
	ps[0] = "mutated"
	assert.Equal(t, PM25, Pollutants()[0])
}

func TestParsePollutant(t *testing.T) {
	p, err := ParsePollutant("PM2.5")
	require.NoError(t, err)
	assert.Equal(t, PM25, p)

	_, err = ParsePollutant("PM1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PM1")
}

func TestPollutant_Unit(t *testing.T) {
	assert.Equal(t, "mg/m³", CO.Unit())
	assert.Equal(t, "µg/m³", NO2.Unit())
}

func TestPollutantError_Is(t *testing.T) {
	cause := context.DeadlineExceeded
	err := error(&PollutantError{Pollutant: O3, Kind: ErrPredictionFailure, Err: cause})

	assert.True(t, errors.Is(err, ErrPredictionFailure))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, ErrModelUnavailable))
	assert.Equal(t, "O3: prediction failed: context deadline exceeded", err.Error())

	var pe *PollutantError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, O3, pe.Pollutant)
}

func TestPollutantError_WithoutCause(t *testing.T) {
	err := &PollutantError{Pollutant: NH3, Kind: ErrModelUnavailable}
	assert.Equal(t, "NH3: model unavailable", err.Error())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
