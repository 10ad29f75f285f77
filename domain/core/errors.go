package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrColumnNotFound  = errors.New("column not found in frame")
	ErrEmptyFrame      = errors.New("frame has no units")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrMissingGeometry = errors.New("frame carries no geometry attributes")

	// Validation errors
	ErrCountExceedsTotal = errors.New("group count exceeds unit total population")
	ErrNegativeCount     = errors.New("negative population count")
	ErrNaNValues         = errors.New("NaN values present in input data")
	ErrInsufficientData  = errors.New("insufficient data for estimation")

	// Parameter errors
	ErrInvalidParameter = errors.New("invalid measure parameter")
	ErrWeightsMismatch  = errors.New("spatial weights do not match frame units")
	ErrUnknownApproach  = errors.New("unknown null approach")

	// Simulation errors
	ErrNoIterations = errors.New("iteration count must be positive")
	ErrDegenerate   = errors.New("degenerate null distribution")
)

// Error constructors with context
func NewColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewParameterError(name string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, name, reason)
}

func NewCountError(unitID string, group, total float64) error {
	return fmt.Errorf("%w: unit %s has group %g > total %g", ErrCountExceedsTotal, unitID, group, total)
}

func NewWeightsError(frameUnits, weightUnits int) error {
	return fmt.Errorf("%w: frame has %d units, weights cover %d", ErrWeightsMismatch, frameUnits, weightUnits)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrEmptyFrame) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrMissingGeometry)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrCountExceedsTotal) ||
		errors.Is(err, ErrNegativeCount) ||
		errors.Is(err, ErrNaNValues) ||
		errors.Is(err, ErrInsufficientData)
}

func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrWeightsMismatch) ||
		errors.Is(err, ErrUnknownApproach)
}
