// Package aqi converts pollutant concentrations into the 0-500 Air Quality
// Index scale.
//
// Each pollutant has a breakpoint table of concentration ranges. A
// concentration is mapped to a sub-index by linear interpolation inside the
// range that contains it, and the overall AQI is the maximum sub-index across
// all pollutants. The AQI is then bucketed into one of six categories, which
// also select the health advisory shown to users.
package aqi

import "github.com/smartcity/aqi-forecast/internal/domain"

// Range is one row of a breakpoint table: concentrations in [Low, High]
// map linearly onto sub-indices in [IndexLow, IndexHigh].
type Range struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	IndexLow  int     `json:"index_low"`
	IndexHigh int     `json:"index_high"`
}

// MaxIndex is the top of the sub-index and AQI scale
const MaxIndex = 500

// Published ranges leave small gaps between one High and the next Low
// (30 and 31 for PM2.5). SubIndex assigns gap values to the upper range.
var breakpoints = map[domain.Pollutant][]Range{
	domain.PM25: {
		{0, 30, 0, 50}, {31, 60, 51, 100}, {61, 90, 101, 200},
		{91, 120, 201, 300}, {121, 250, 301, 400}, {251, 500, 401, 500},
	},
	domain.PM10: {
		{0, 50, 0, 50}, {51, 100, 51, 100}, {101, 250, 101, 200},
		{251, 350, 201, 300}, {351, 430, 301, 400}, {431, 600, 401, 500},
	},
	domain.NO2: {
		{0, 40, 0, 50}, {41, 80, 51, 100}, {81, 180, 101, 200},
		{181, 280, 201, 300}, {281, 400, 301, 400}, {401, 1000, 401, 500},
	},
	domain.NH3: {
		{0, 200, 0, 50}, {201, 400, 51, 100}, {401, 800, 101, 200},
		{801, 1200, 201, 300}, {1201, 1800, 301, 400}, {1801, 2400, 401, 500},
	},
	domain.SO2: {
		{0, 40, 0, 50}, {41, 80, 51, 100}, {81, 380, 101, 200},
		{381, 800, 201, 300}, {801, 1600, 301, 400}, {1601, 2000, 401, 500},
	},
	domain.CO: {
		{0, 1.0, 0, 50}, {1.1, 2.0, 51, 100}, {2.1, 10.0, 101, 200},
		{10.1, 17.0, 201, 300}, {17.1, 34.0, 301, 400}, {34.1, 50.0, 401, 500},
	},
	domain.O3: {
		{0, 50, 0, 50}, {51, 100, 51, 100}, {101, 168, 101, 200},
		{169, 208, 201, 300}, {209, 748, 301, 400}, {749, 1000, 401, 500},
	},
}

// Breakpoints returns a copy of the pollutant's table, ordered by concentration.
// Unknown pollutants yield nil.
func Breakpoints(p domain.Pollutant) []Range {
	table, ok := breakpoints[p]
	if !ok {
		return nil
	}
	out := make([]Range, len(table))
	copy(out, table)
	return out
}

// Max returns the highest tabulated concentration for the pollutant
func Max(p domain.Pollutant) float64 {
	table := breakpoints[p]
	if len(table) == 0 {
		return 0
	}
	return table[len(table)-1].High
}
