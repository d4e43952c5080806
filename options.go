package cubesolver

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesolver/internal/solver"
)

// Option configures Solve.
type Option func(*config)

type config struct {
	optimize      bool
	logger        logrus.FieldLogger
	maxIterations int
	phaseCallback func(phase Phase, moveCount int)
}

func defaultConfig() *config {
	return &config{
		optimize:      true,
		maxIterations: solver.DefaultMaxIterations,
	}
}

func (c *config) solverOptions() []solver.Option {
	opts := []solver.Option{solver.WithMaxIterations(c.maxIterations)}
	if c.logger != nil {
		opts = append(opts, solver.WithLogger(c.logger))
	}
	if c.phaseCallback != nil {
		opts = append(opts, solver.WithPhaseCallback(c.phaseCallback))
	}
	return opts
}

// WithOptimize enables or disables the move optimizer.
// When enabled (default), Solution.Optimized holds the shortened log.
func WithOptimize(enabled bool) Option {
	return func(c *config) {
		c.optimize = enabled
	}
}

// WithLogger sets a logger for per-phase debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMaxIterations bounds every retry loop inside a phase. A phase that
// exceeds it fails with ErrStuck. The default is 12.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithPhaseCallback sets a callback that fires after each phase completes,
// with the number of moves applied so far.
func WithPhaseCallback(cb func(phase Phase, moveCount int)) Option {
	return func(c *config) {
		c.phaseCallback = cb
	}
}
