package ash

import (
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

// ProgressUpdate represents the state of the minimizer after a major iteration.
type ProgressUpdate struct {
	// Method is the name of the optimization method being run
	Method string

	// Iteration is the major iteration just completed (1-based)
	Iteration int

	// Loss is the objective value at the current logits
	Loss float64

	// Weights is the softmax of the current logits
	Weights []float64

	// FuncEvaluations is the number of objective evaluations so far,
	// including those spent on finite-difference gradients
	FuncEvaluations int
}

// Config holds all configuration parameters for fitting mixing weights.
// It selects the grid, the minimizer and its budget, and where progress and
// log records go.
//
// Fields explanation:
// - Grid: Candidate prior variances; nil means derive one with DefaultGrid
// - GridPoints: Number of values DefaultGrid produces
// - Method: Minimization method
// - MajorIterations: Iteration budget (0 = unlimited)
// - FuncEvaluations: Objective evaluation budget (0 = unlimited)
// - GradientThreshold: Convergence threshold on the gradient's infinity norm
//
// Usage example:
//
//	config := DefaultConfig()
//
//	// Fit against a fixed grid instead of the data-derived one
//	config.Grid = []float64{0.01, 0.1, 1, 10}
//
//	// Use a gradient-free method
//	config.Method = NelderMead
//
//	weights, err := Ash(beta, se, config)
//
// Note:
// - A zero Config is usable; unset fields fall back to the defaults below.
type Config struct {
	// Grid is the set of candidate prior variances. Order is kept in the
	// returned weights. When nil, DefaultGrid derives one from the data.
	Grid []float64

	// GridPoints is the number of values produced by DefaultGrid.
	// Ignored when Grid is set. Default: DefaultGridPoints.
	GridPoints int

	// Method is the unconstrained minimizer. Default: BFGS with a
	// finite-difference gradient.
	Method Method

	// MajorIterations bounds the number of major iterations. Reaching the
	// bound is reported as an optimization failure. 0 means no bound.
	MajorIterations int

	// FuncEvaluations bounds the number of objective evaluations. Reaching
	// the bound is reported as an optimization failure. 0 means no bound.
	FuncEvaluations int

	// GradientThreshold stops gradient-based methods once the infinity norm
	// of the gradient falls below it. Default: 1e-6.
	GradientThreshold float64

	// ProgressChan is used to send progress updates during optimization.
	// If nil, no updates will be sent. Sends never block; updates are
	// dropped when the channel is full.
	ProgressChan chan<- ProgressUpdate

	// Logger receives debug records about grid resolution and the optimizer
	// outcome. If nil, nothing is logged.
	Logger *slog.Logger
}

// Result is the full outcome of a successful fit.
type Result struct {
	// Grid is the grid actually used, either supplied or derived.
	Grid []float64

	// Logits are the final unconstrained parameters.
	Logits []float64

	// Weights is Softmax(Logits), one weight per grid value.
	Weights []float64

	// Loss is the objective value at Logits.
	Loss float64

	// MixtureLogLik is the marginal mixture log-likelihood at Weights.
	// It is reported for diagnosis only and is not what was optimized.
	MixtureLogLik float64

	// Method is the minimizer that produced the result.
	Method Method

	// Status is the minimizer's termination status.
	Status optimize.Status

	// MajorIterations and FuncEvaluations are the minimizer's counters.
	MajorIterations int
	FuncEvaluations int
}

// SimulationConfig configures Simulate.
//
// Usage example:
//
//	config := DefaultSimulationConfig()
//	config.Seed = 42
//	config.Logits = []float64{2, 0, -2} // favour the smallest of the 3 default scales
//
//	beta, err := Simulate(1000, 0.75, config)
type SimulationConfig struct {
	// Logits are the mixture logits over Grid. nil means all zeros
	// (uniform mixture). When both are set their lengths must match.
	Logits []float64

	// Grid holds the component variances. nil means three log-spaced values
	// in [0.1, 1].
	Grid []float64

	// Seed seeds the random source when Source is nil.
	Seed uint64

	// Source overrides the random source. It is not safe for concurrent
	// use; give each simulation its own.
	Source rand.Source

	// Logger receives a debug record per simulation. If nil, nothing is
	// logged.
	Logger *slog.Logger
}
