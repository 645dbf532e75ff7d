package aqi

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// band is one rung of the threshold ladder. Upper bounds are inclusive.
type band struct {
	upper    int
	label    string
	category domain.Category
	color    string
	advisory string
}

// ladder is shared by Classify, Advisory and Scale so the thresholds cannot drift apart
var ladder = []band{
	{50, "0-50", domain.CategoryGood, "#00e400",
		"🌿 Good: Air quality is ideal. No precautions needed."},
	{100, "51-100", domain.CategorySatisfactory, "#a3c853",
		"😊 Satisfactory: Acceptable air quality. Sensitive individuals should avoid outdoor exertion."},
	{200, "101-200", domain.CategoryModerate, "#ffff00",
		"😐 Moderate: Consider limiting prolonged outdoor exertion."},
	{300, "201-300", domain.CategoryPoor, "#ff7e00",
		"😷 Poor: People with heart/lung disease, children and older adults should reduce prolonged outdoor exertion."},
	{400, "301-400", domain.CategoryVeryPoor, "#ff0000",
		"🚫 Very Poor: Everyone should avoid outdoor physical activity."},
	{math.MaxInt, "401-500", domain.CategorySevere, "#7e0023",
		"🛑 Severe: Avoid all outdoor activity. Use air purifiers indoors."},
}

func lookup(aqi int) band {
	for _, b := range ladder {
		if aqi <= b.upper {
			return b
		}
	}
	return ladder[len(ladder)-1]
}

// Classify maps an AQI value to its category
func Classify(aqi int) domain.Category {
	return lookup(aqi).category
}

// Advisory returns the health tip for an AQI value
func Advisory(aqi int) string {
	return lookup(aqi).advisory
}

var emoji = regexp.MustCompile(`[\x{10000}-\x{10FFFF}]`)

// PlainAdvisory is Advisory without emoji, for plain-text and report output
func PlainAdvisory(aqi int) string {
	return StripEmoji(Advisory(aqi))
}

// StripEmoji removes characters outside the Basic Multilingual Plane
func StripEmoji(s string) string {
	return strings.TrimSpace(emoji.ReplaceAllString(s, ""))
}

// ScaleBand is one row of the AQI scale legend
type ScaleBand struct {
	Range    string          `json:"range"`
	Category domain.Category `json:"category"`
	Color    string          `json:"color"`
}

// Scale returns the AQI scale legend, lowest band first
func Scale() []ScaleBand {
	out := make([]ScaleBand, 0, len(ladder))
	for _, b := range ladder {
		out = append(out, ScaleBand{Range: b.label, Category: b.category, Color: b.color})
	}
	return out
}

// Aggregate takes the maximum sub-index as the AQI and classifies it
func Aggregate(sub domain.SubIndexResult) (domain.AQIResult, error) {
	if len(sub) == 0 {
		return domain.AQIResult{}, domain.ErrEmptyPrediction
	}
	aqi := math.MinInt
	for _, v := range sub {
		if v > aqi {
			aqi = v
		}
	}
	return domain.AQIResult{AQI: aqi, Category: Classify(aqi)}, nil
}

// IsOutOfRange reports whether err only flags an uncovered concentration
func IsOutOfRange(err error) bool {
	return errors.Is(err, domain.ErrOutOfRange)
}
