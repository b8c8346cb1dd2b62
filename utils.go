package ash

import (
	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// toFloat64s converts a slice of numeric values to a new slice of float64
// values.
//
// Important notes:
// - Creates a new slice; doesn't modify the input
// - Preserves order of elements
// - A nil input yields a nil output so "no grid" stays distinguishable from
// "empty grid"
func toFloat64s[T constraints.Integer | constraints.Float](values []T) []float64 {
	if values == nil {
		return nil
	}

	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}

	return floats
}
