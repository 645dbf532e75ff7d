package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate reports malformed or impossible date input
	ErrInvalidDate = errors.New("invalid date")

	// ErrModelUnavailable reports a pollutant without an associated model
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrPredictionFailure reports a model error or an unusable model output
	ErrPredictionFailure = errors.New("prediction failed")

	// ErrEmptyPrediction reports that no sub-index could be aggregated
	ErrEmptyPrediction = errors.New("empty prediction")

	// ErrOutOfRange reports a concentration outside every breakpoint range.
	// It is a warning: the sub-index is still produced under the active policy.
	ErrOutOfRange = errors.New("concentration out of range")
)

// PollutantError ties one of the sentinel kinds above to a pollutant
type PollutantError struct {
	Pollutant Pollutant
	Kind      error
	Err       error
}

func (e *PollutantError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Pollutant, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Pollutant, e.Kind, e.Err)
}

func (e *PollutantError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
