// Package report renders forecasts for download: a plain-text report for a
// single day and a Parquet table for date ranges.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/smartcity/aqi-forecast/internal/aqi"
	"github.com/smartcity/aqi-forecast/internal/domain"
)

// Filename is the download name of the text report for a city
func Filename(city string) string {
	return strings.ReplaceAll(city, " ", "_") + "_AQI_Report.txt"
}

// Text renders the single-day forecast report
func Text(f domain.Forecast, city string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s AQI Prediction Report\n\n", city)
	fmt.Fprintf(&buf, "Date: %s\n", f.Date)
	fmt.Fprintf(&buf, "AQI: %d (%s)\n", f.AQI, f.Category)
	fmt.Fprintf(&buf, "Health Tip: %s\n\n", aqi.StripEmoji(f.Advisory))

	for _, p := range domain.Pollutants() {
		c, ok := f.Concentrations[p]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "%s: %.2f\n", p, c)
	}

	if len(f.OutOfRange) > 0 {
		names := make([]string, len(f.OutOfRange))
		for i, p := range f.OutOfRange {
			names[i] = string(p)
		}
		fmt.Fprintf(&buf, "\nOutside published breakpoints: %s\n", strings.Join(names, ", "))
	}

	return buf.Bytes()
}
