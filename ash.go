package ash

import (
	"io"
	"log/slog"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

//////
// Const, vars, types.
//////

// defaultGradientThreshold is the convergence threshold on the gradient's
// infinity norm used when Config leaves it unset.
const defaultGradientThreshold = 1e-6

//////
// Exported functionalities.
//////

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Grid:              nil, // Derive from the data.
		GridPoints:        DefaultGridPoints,
		Method:            BFGS,
		MajorIterations:   0,
		FuncEvaluations:   0,
		GradientThreshold: defaultGradientThreshold,
		ProgressChan:      nil, // Default to no progress updates.
		Logger:            discardLogger(),
	}
}

// Ash estimates the mixing weights of a scale mixture of zero-mean Gaussians
// that best explains observations beta with standard errors se.
//
// Parameters:
// - beta: Observed values
// - se: Standard errors, same length as beta, all positive
// - config: Config controlling the grid and the minimizer
//
// Returns:
// - []float64: Mixing weights, one per grid value in grid order, summing to 1
// - error: Validation error, or *OptimizationError if the minimizer failed
//
// Usage example:
//
//	weights, err := Ash(beta, se, DefaultConfig())
//	if errors.Is(err, ErrInvalidGrid) {
//	    // fix the grid
//	}
//
// How it works:
// 1. Resolves the grid (config.Grid, or DefaultGrid) and validates it
// 2. Computes the likelihood matrix once
// 3. Minimizes the objective over logits starting from zero
// 4. Decodes the final logits with Softmax
//
// Important notes:
// - Pure: inputs are not modified and no state is shared between calls, so
// concurrent calls are safe
// - Deterministic for a given input and config
func Ash(beta, se []float64, config Config) ([]float64, error) {
	result, err := Fit(beta, se, config)
	if err != nil {
		return nil, err
	}

	return result.Weights, nil
}

// AshOf is Ash for any floating-point element type.
func AshOf[T constraints.Float](beta, se []T, config Config) ([]float64, error) {
	return Ash(toFloat64s(beta), toFloat64s(se), config)
}

// Fit runs the same estimation as Ash and returns the full Result, including
// the grid used, the final logits and the minimizer's counters.
func Fit(beta, se []float64, config Config) (*Result, error) {
	config = resolveConfig(config)
	logger := config.Logger

	if err := validateObservations(beta, se); err != nil {
		return nil, err
	}

	grid, err := resolveGrid(beta, se, config)
	if err != nil {
		return nil, err
	}

	logger.Debug("grid resolved",
		slog.Int("observations", len(beta)),
		slog.Int("components", len(grid)),
		slog.Float64("min", floats.Min(grid)),
		slog.Float64("max", floats.Max(grid)),
	)

	L, err := LikelihoodMatrix(beta, se, grid)
	if err != nil {
		return nil, err
	}

	outcome := minimize(Objective(L), len(grid), config)
	logOutcome(logger, config.Method, outcome)

	switch o := outcome.(type) {
	case Success:
		mixture, err := MixtureLogLikelihood(L, o.Weights)
		if err != nil {
			return nil, err
		}

		return &Result{
			Grid:            grid,
			Logits:          o.Logits,
			Weights:         o.Weights,
			Loss:            o.Loss,
			MixtureLogLik:   mixture,
			Method:          config.Method,
			Status:          o.Status,
			MajorIterations: o.Stats.MajorIterations,
			FuncEvaluations: o.Stats.FuncEvaluations,
		}, nil
	case Failure:
		return nil, o.Err()
	default:
		panic("ash: unexpected optimization outcome")
	}
}

//////
// Helpers.
//////

// resolveConfig fills unset fields of config with defaults.
func resolveConfig(config Config) Config {
	if config.GridPoints <= 0 {
		config.GridPoints = DefaultGridPoints
	}

	if config.GradientThreshold <= 0 {
		config.GradientThreshold = defaultGradientThreshold
	}

	if config.Logger == nil {
		config.Logger = discardLogger()
	}

	return config
}

// resolveGrid returns a private copy of the supplied grid, or the default
// grid when none was supplied. Either way the grid is validated.
func resolveGrid(beta, se []float64, config Config) ([]float64, error) {
	if config.Grid == nil {
		return DefaultGrid(beta, se, config.GridPoints)
	}

	if err := ValidateGrid(config.Grid); err != nil {
		return nil, err
	}

	grid := make([]float64, len(config.Grid))
	copy(grid, config.Grid)

	return grid, nil
}

// discardLogger returns a logger that drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
