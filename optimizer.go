package ash

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

//////
// Available minimization methods.
// Each one minimizes the objective over unconstrained logits starting from
// zero. None of them is given an analytic gradient.
//////

// Method selects the unconstrained minimizer.
type Method int

const (
	// BFGS is the quasi-Newton method with a central finite-difference
	// gradient. It is the default.
	BFGS Method = iota

	// LBFGS is the limited-memory variant of BFGS, useful for large grids.
	LBFGS

	// ConjugateGradient is nonlinear conjugate gradient with a
	// finite-difference gradient.
	ConjugateGradient

	// NelderMead is the gradient-free downhill simplex method.
	NelderMead
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case BFGS:
		return "BFGS"
	case LBFGS:
		return "LBFGS"
	case ConjugateGradient:
		return "ConjugateGradient"
	case NelderMead:
		return "NelderMead"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// usesGradient reports whether the method needs a gradient, which is then
// estimated by finite differences.
func (m Method) usesGradient() bool {
	return m != NelderMead
}

// optimizer returns a fresh gonum implementation of the method.
func (m Method) optimizer() (optimize.Method, error) {
	switch m {
	case BFGS:
		return &optimize.BFGS{}, nil
	case LBFGS:
		return &optimize.LBFGS{}, nil
	case ConjugateGradient:
		return &optimize.CG{}, nil
	case NelderMead:
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("ash: unknown optimization method %d", int(m))
	}
}

//////
// Outcome of a minimization.
//////

// Outcome is the result of running the minimizer: either a Success or a
// Failure. Callers type-switch on it.
type Outcome interface {
	isOutcome()
}

// Success holds the minimizer's solution.
type Success struct {
	Logits  []float64
	Weights []float64
	Loss    float64
	Status  optimize.Status
	Stats   optimize.Stats
}

// Failure holds the minimizer's diagnostic when it did not succeed.
type Failure struct {
	Status  optimize.Status
	Message string
	Stats   optimize.Stats
}

func (Success) isOutcome() {}
func (Failure) isOutcome() {}

// Err converts the failure into an *OptimizationError.
func (f Failure) Err() error {
	return &OptimizationError{Status: f.Status, Message: f.Message}
}

//////
// Minimization.
//////

// minimize runs the configured method on objective from k zero logits.
//
// Parameters:
// - objective: Scalar loss of the logits
// - k: Number of logits (grid size)
// - config: Resolved configuration
//
// Returns:
// - Outcome: Success with decoded weights, or Failure with the minimizer's
// message verbatim
//
// Important notes:
// - A returned error or an early termination status (iteration or
// evaluation budget reached, line search failure) is a Failure
// - There is no retry and no alternative starting point
func minimize(objective func([]float64) float64, k int, config Config) Outcome {
	method, err := config.Method.optimizer()
	if err != nil {
		return Failure{Message: err.Error()}
	}

	problem := optimize.Problem{Func: objective}
	if config.Method.usesGradient() {
		fdSettings := &fd.Settings{Formula: fd.Central}
		problem.Grad = func(grad, x []float64) {
			fd.Gradient(grad, objective, x, fdSettings)
		}
	}

	settings := &optimize.Settings{
		MajorIterations:   config.MajorIterations,
		FuncEvaluations:   config.FuncEvaluations,
		GradientThreshold: config.GradientThreshold,
	}
	if config.ProgressChan != nil {
		settings.Recorder = &progressRecorder{method: config.Method, ch: config.ProgressChan}
	}

	result, err := optimize.Minimize(problem, make([]float64, k), settings, method)
	if result == nil {
		return Failure{Message: err.Error()}
	}

	if err == nil {
		err = result.Status.Err()
	}

	if err != nil {
		return Failure{Status: result.Status, Message: err.Error(), Stats: result.Stats}
	}

	logits := make([]float64, k)
	copy(logits, result.X)

	return Success{
		Logits:  logits,
		Weights: Softmax(logits),
		Loss:    result.F,
		Status:  result.Status,
		Stats:   result.Stats,
	}
}

//////
// Progress reporting.
//////

// progressRecorder is an optimize.Recorder that forwards major iterations to
// a progress channel.
type progressRecorder struct {
	method Method
	ch     chan<- ProgressUpdate
}

// Init implements optimize.Recorder.
func (r *progressRecorder) Init() error {
	return nil
}

// Record implements optimize.Recorder.
func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration == 0 {
		return nil
	}

	update := ProgressUpdate{
		Method:          r.method.String(),
		Iteration:       stats.MajorIterations,
		Loss:            loc.F,
		Weights:         Softmax(loc.X),
		FuncEvaluations: stats.FuncEvaluations,
	}

	select {
	case r.ch <- update:
	default:
		// Skip update if channel is full.
	}

	return nil
}

// logOutcome writes a record describing how the minimizer finished.
func logOutcome(logger *slog.Logger, method Method, outcome Outcome) {
	switch o := outcome.(type) {
	case Success:
		logger.Debug("optimization converged",
			slog.String("method", method.String()),
			slog.String("status", o.Status.String()),
			slog.Float64("loss", o.Loss),
			slog.Int("iterations", o.Stats.MajorIterations),
			slog.Int("evaluations", o.Stats.FuncEvaluations),
		)
	case Failure:
		logger.Warn("optimization failed",
			slog.String("method", method.String()),
			slog.String("status", o.Status.String()),
			slog.String("message", o.Message),
			slog.Int("iterations", o.Stats.MajorIterations),
		)
	}
}
