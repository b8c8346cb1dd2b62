package ash

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//////
// Const, vars, types.
//////

const (
	// DefaultGridPoints is the number of scale values produced by DefaultGrid
	// when the caller does not ask for a specific count.
	DefaultGridPoints = 50

	// gridStartDivisor scales min(se) down to the smallest grid value.
	gridStartDivisor = 10.0

	// gridNullSpan is the ratio end/start used when no observation exceeds
	// its own standard error.
	gridNullSpan = 8.0
)

//////
// Exported functionalities.
//////

// DefaultGrid derives a sequence of candidate prior variances from the data.
//
// The smallest value is min(se)/10. The largest is 2*sqrt(max(beta-se)), or
// 8 times the smallest value when every observation lies below its own
// standard error. Values in between are log-spaced.
//
// Parameters:
// - beta: Observed values
// - se: Standard errors, same length as beta, all positive
// - points: Number of grid values to produce (at least 1)
//
// Returns:
// - []float64: Log-spaced grid in increasing order
// - error: ErrEmptyInput, ErrShapeMismatch, ErrInvalidStandardError,
// ErrInvalidObservation or ErrInvalidGrid
//
// Usage example:
//
//	grid, err := DefaultGrid(beta, se, DefaultGridPoints)
//	if err != nil {
//	    return err
//	}
//
// Important notes:
// - The endpoint heuristic is crude; it bounds the scales by the spread of
// the data instead of exposing another tuning knob
// - When 2*sqrt(max(beta-se)) falls below min(se)/10 the endpoints are
// swapped so the grid is still increasing
func DefaultGrid(beta, se []float64, points int) ([]float64, error) {
	if err := validateObservations(beta, se); err != nil {
		return nil, err
	}

	if points < 1 {
		return nil, fmt.Errorf("%w: requested %d grid points", ErrInvalidGrid, points)
	}

	start := floats.Min(se) / gridStartDivisor

	diff := make([]float64, len(beta))
	floats.SubTo(diff, beta, se)

	var end float64
	if m := floats.Max(diff); m < 0 {
		end = gridNullSpan * start
	} else {
		end = 2 * math.Sqrt(m)
	}

	if end <= 0 {
		return nil, fmt.Errorf("%w: upper grid bound %g is not positive", ErrInvalidGrid, end)
	}

	if end < start {
		start, end = end, start
	}

	return LogSpaced(start, end, points), nil
}

// LogSpaced returns points values spaced evenly on a log scale between lo
// and hi inclusive. Both bounds must be positive. The first and last values
// are exactly lo and hi.
//
// It returns nil when points < 1 and []float64{lo} when points == 1.
func LogSpaced(lo, hi float64, points int) []float64 {
	switch {
	case points < 1:
		return nil
	case points == 1:
		return []float64{lo}
	}

	grid := floats.LogSpan(make([]float64, points), lo, hi)

	// Pin the endpoints; exp(log(x)) is not always x.
	grid[0], grid[points-1] = lo, hi

	return grid
}

// ValidateGrid checks that grid is usable as a set of variance components:
// non-empty, with every value finite and strictly positive. Violations wrap
// ErrInvalidGrid and name the first offending value.
func ValidateGrid(grid []float64) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: grid is empty", ErrInvalidGrid)
	}

	for i, v := range grid {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: grid[%d] = %g", ErrInvalidGrid, i, v)
		}
	}

	return nil
}

//////
// Helpers.
//////

// validateObservations checks the observation set shared by DefaultGrid,
// LikelihoodMatrix and Fit.
func validateObservations(beta, se []float64) error {
	if len(beta) == 0 {
		return fmt.Errorf("%w: no observations", ErrEmptyInput)
	}

	if len(beta) != len(se) {
		return fmt.Errorf("%w: len(beta) = %d, len(se) = %d", ErrShapeMismatch, len(beta), len(se))
	}

	for j := range beta {
		if math.IsNaN(beta[j]) || math.IsInf(beta[j], 0) {
			return fmt.Errorf("%w: beta[%d] = %g", ErrInvalidObservation, j, beta[j])
		}

		if math.IsNaN(se[j]) || math.IsInf(se[j], 0) || se[j] <= 0 {
			return fmt.Errorf("%w: se[%d] = %g", ErrInvalidStandardError, j, se[j])
		}
	}

	return nil
}
