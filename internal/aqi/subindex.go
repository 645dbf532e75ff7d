package aqi

import (
	"fmt"
	"math"
	"strings"

	"github.com/smartcity/aqi-forecast/internal/domain"
	"github.com/smartcity/aqi-forecast/pkg/utils"
)

// OutOfRangePolicy decides the sub-index of a concentration that no range covers
type OutOfRangePolicy int

const (
	// Clamp pins negative values to 0, values above the table to 500 and
	// values between two ranges to the upper range's IndexLow
	Clamp OutOfRangePolicy = iota
	// Zero returns 0 for any uncovered value
	Zero
)

func (p OutOfRangePolicy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Zero:
		return "zero"
	default:
		return fmt.Sprintf("OutOfRangePolicy(%d)", int(p))
	}
}

// ParsePolicy reads a policy name as used in configuration
func ParsePolicy(s string) (OutOfRangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return Clamp, nil
	case "zero":
		return Zero, nil
	default:
		return 0, fmt.Errorf("aqi: unknown out-of-range policy %q", s)
	}
}

// Calculator converts concentrations to sub-indices
type Calculator struct {
	Policy OutOfRangePolicy
}

// SubIndex converts a concentration with the default Clamp policy
func SubIndex(p domain.Pollutant, concentration float64) (int, error) {
	return Calculator{}.SubIndex(p, concentration)
}

// SubIndex interpolates the concentration inside its breakpoint range and
// rounds half to even.
//
// A value outside the table still produces a sub-index under c.Policy, and the
// returned error wraps domain.ErrOutOfRange so the caller can report it. NaN
// fails with domain.ErrPredictionFailure.
func (c Calculator) SubIndex(p domain.Pollutant, concentration float64) (int, error) {
	table, ok := breakpoints[p]
	if !ok {
		return 0, fmt.Errorf("aqi: no breakpoint table for %q", p)
	}
	if math.IsNaN(concentration) {
		return 0, &domain.PollutantError{Pollutant: p, Kind: domain.ErrPredictionFailure, Err: fmt.Errorf("concentration is NaN")}
	}

	for i, r := range table {
		if concentration < r.Low {
			if i == 0 {
				break
			}
			return c.gap(p, concentration, table[i-1], r)
		}
		if concentration <= r.High {
			v := utils.Interpolate(concentration, r.Low, r.High, float64(r.IndexLow), float64(r.IndexHigh))
			return int(math.RoundToEven(v)), nil
		}
	}

	return c.outOfRange(p, concentration, table)
}

// gap handles a concentration between the published ranges prev and next
func (c Calculator) gap(p domain.Pollutant, concentration float64, prev, next Range) (int, error) {
	err := &domain.PollutantError{
		Pollutant: p,
		Kind:      domain.ErrOutOfRange,
		Err:       fmt.Errorf("%g between ranges [%g, %g] and [%g, %g]", concentration, prev.Low, prev.High, next.Low, next.High),
	}
	if c.Policy == Zero {
		return 0, err
	}
	return next.IndexLow, err
}

func (c Calculator) outOfRange(p domain.Pollutant, concentration float64, table []Range) (int, error) {
	err := &domain.PollutantError{
		Pollutant: p,
		Kind:      domain.ErrOutOfRange,
		Err:       fmt.Errorf("%g outside [%g, %g]", concentration, table[0].Low, table[len(table)-1].High),
	}
	if c.Policy == Zero || concentration < table[0].Low {
		return 0, err
	}
	return table[len(table)-1].IndexHigh, err
}
