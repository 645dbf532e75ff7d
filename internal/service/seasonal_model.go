package service

import (
	"context"
	"math"

	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/pkg/utils"
)

// seasonLevels are typical daily mean concentrations for a coastal Indian city
type seasonLevels struct {
	winter      float64 // Dec-Feb
	summer      float64 // Mar-May
	monsoon     float64 // Jun-Sep
	postMonsoon float64 // Oct-Nov
}

const maxSwing = 0.08

var seasonalBaselines = map[domain.Pollutant]seasonLevels{
	domain.PM25: {110, 60, 18, 55},
	domain.PM10: {210, 120, 45, 110},
	domain.NO2:  {55, 35, 18, 40},
	domain.NH3:  {30, 25, 15, 22},
	domain.SO2:  {18, 14, 8, 12},
	domain.CO:   {1.6, 1.1, 0.6, 1.0},
	domain.O3:   {40, 55, 25, 38},
}

// SeasonalModel is a deterministic baseline used when no model service is
// configured (demo mode). It follows the monsoon cycle with a weekend dip.
type SeasonalModel struct {
	pollutant domain.Pollutant
	levels    seasonLevels
}

// NewSeasonalModels returns a baseline model for every pollutant
func NewSeasonalModels() domain.ModelSet {
	set := make(domain.ModelSet)
	for _, p := range domain.Pollutants() {
		set[p] = SeasonalModel{pollutant: p, levels: seasonalBaselines[p]}
	}
	return set
}

// Predict estimates the daily concentration for the date
func (m SeasonalModel) Predict(ctx context.Context, f domain.DateFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var base float64
	switch {
	case f.Month == 12 || f.Month <= 2:
		base = m.levels.winter
	case f.Month <= 5:
		base = m.levels.summer
	case f.Month <= 9:
		base = m.levels.monsoon
	default:
		base = m.levels.postMonsoon
	}

	// Less traffic and construction on weekends
	weekday := 1.0
	if f.DayOfWeek >= 5 {
		weekday = 0.9
	}

	// Monthly and weekly cycles, capped at ±8%
	swing := 1 +
		0.06*math.Sin(2*math.Pi*float64(f.Day)/31) +
		0.04*math.Sin(2*math.Pi*float64(f.DayOfWeek)/7)
	swing = utils.Clamp(swing, 1-maxSwing, 1+maxSwing)

	return utils.RoundTo(base*weekday*swing, 2), nil
}
