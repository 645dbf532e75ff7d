package aqi

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// DefaultLayout is day-month-year, e.g. 15-03-2024
const DefaultLayout = "02-01-2006"

// Extractor turns date strings into model features
type Extractor struct {
	Layout string
}

// NewExtractor returns an Extractor for layout, falling back to DefaultLayout
func NewExtractor(layout string) Extractor {
	if layout == "" {
		layout = DefaultLayout
	}
	return Extractor{Layout: layout}
}

func (e Extractor) layout() string {
	if e.Layout == "" {
		return DefaultLayout
	}
	return e.Layout
}

// Parse reads a calendar date. Impossible dates such as 31-04-2024 fail.
func (e Extractor) Parse(s string) (time.Time, error) {
	t, err := time.Parse(e.layout(), strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s: %v", domain.ErrInvalidDate, s, e.layout(), err)
	}
	return t, nil
}

// Extract parses s and derives its features
func (e Extractor) Extract(s string) (domain.DateFeatures, error) {
	t, err := e.Parse(s)
	if err != nil {
		return domain.DateFeatures{}, err
	}
	return FromTime(t), nil
}

// Format renders t in the extractor's layout
func (e Extractor) Format(t time.Time) string {
	return t.Format(e.layout())
}

// FromTime derives features from the calendar date of t, ignoring its clock time
func FromTime(t time.Time) domain.DateFeatures {
	return domain.DateFeatures{
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		DayOfWeek: (int(t.Weekday()) + 6) % 7,
	}
}
