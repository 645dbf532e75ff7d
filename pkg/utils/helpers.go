package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Interpolate maps x from [x0, x1] onto [y0, y1] along a straight line.
// x0 and x1 must differ.
func Interpolate(x, x0, x1, y0, y1 float64) float64 {
	return ((y1-y0)/(x1-x0))*(x-x0) + y0
}

// IsFinite reports whether v is neither NaN nor an infinity
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
