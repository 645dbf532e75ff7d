package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 4.5, Clamp(4.5, 0, 10))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 12.35, RoundTo(12.3456, 2))
	assert.Equal(t, 12.0, RoundTo(12.3456, 0))
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 0.0, Interpolate(0, 0, 30, 0, 50))
	assert.Equal(t, 50.0, Interpolate(30, 0, 30, 0, 50))
	assert.Equal(t, 25.0, Interpolate(15, 0, 30, 0, 50))
	assert.InDelta(t, 75.5, Interpolate(45.5, 31, 60, 51, 100), 1e-9)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
