package domain

import "fmt"

// Pollutant identifies one of the monitored air pollutants
type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	NO2  Pollutant = "NO2"
	NH3  Pollutant = "NH3"
	SO2  Pollutant = "SO2"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

var pollutants = []Pollutant{PM25, PM10, NO2, NH3, SO2, CO, O3}

// Pollutants returns the closed pollutant set in display order
func Pollutants() []Pollutant {
	out := make([]Pollutant, len(pollutants))
	copy(out, pollutants)
	return out
}

// ParsePollutant validates a pollutant name
func ParsePollutant(s string) (Pollutant, error) {
	for _, p := range pollutants {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("domain: unknown pollutant %q", s)
}

// Unit returns the concentration unit used by the breakpoint tables
func (p Pollutant) Unit() string {
	if p == CO {
		return "mg/m³"
	}
	return "µg/m³"
}
