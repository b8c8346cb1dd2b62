package ash

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

//////
// Sentinel errors.
//////

var (
	// ErrInvalidGrid is returned when a grid is empty or holds a value that is
	// not a finite, strictly positive number.
	ErrInvalidGrid = errors.New("ash: grid must be non-empty and strictly positive")

	// ErrShapeMismatch is returned when two parallel sequences (beta and se, or
	// simulation logits and grid) have different lengths.
	ErrShapeMismatch = errors.New("ash: shape mismatch")

	// ErrInvalidProbability is returned when pi0 is outside the open interval (0, 1).
	ErrInvalidProbability = errors.New("ash: probability must be in (0, 1)")

	// ErrOptimizationFailed is returned when the minimizer terminates without
	// success. The concrete error is an *OptimizationError.
	ErrOptimizationFailed = errors.New("ash: optimization failed")

	// ErrEmptyInput is returned when there are no observations to fit or no
	// samples to draw.
	ErrEmptyInput = errors.New("ash: empty input")

	// ErrInvalidStandardError is returned when a standard error is not a
	// finite, strictly positive number.
	ErrInvalidStandardError = errors.New("ash: standard errors must be finite and positive")

	// ErrInvalidObservation is returned when an observation is NaN or infinite.
	ErrInvalidObservation = errors.New("ash: observations must be finite")

	// ErrInvalidLogits is returned when simulation logits hold a NaN or +Inf,
	// or are all -Inf, so they do not define a probability vector.
	ErrInvalidLogits = errors.New("ash: logits must define a probability vector")
)

//////
// Optimization failure.
//////

// OptimizationError carries the diagnostic reported by the minimizer when it
// terminates without success. It matches ErrOptimizationFailed under errors.Is.
//
// Usage example:
//
//	weights, err := Ash(beta, se, DefaultConfig())
//
//	var optErr *OptimizationError
//	if errors.As(err, &optErr) {
//	    log.Printf("optimizer stopped with %v: %s", optErr.Status, optErr.Message)
//	}
type OptimizationError struct {
	// Status is the termination status reported by the minimizer.
	Status optimize.Status

	// Message is the minimizer's diagnostic, passed through verbatim.
	Message string
}

// Error implements the error interface.
func (e *OptimizationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOptimizationFailed, e.Message)
}

// Unwrap makes errors.Is(err, ErrOptimizationFailed) hold.
func (e *OptimizationError) Unwrap() error {
	return ErrOptimizationFailed
}
