package solver

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultMaxIterations bounds every retry and spin loop in a phase.
const DefaultMaxIterations = 12

// Option configures a Solver.
type Option func(*config)

type config struct {
	logger        logrus.FieldLogger
	maxIterations int
	phaseCallback func(phase Phase, moveCount int)
}

func defaultConfig() *config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &config{
		logger:        l,
		maxIterations: DefaultMaxIterations,
	}
}

// WithLogger sets the logger phases report to at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxIterations changes the loop bound. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithPhaseCallback sets a callback that fires after each phase completes,
// with the number of moves logged so far.
func WithPhaseCallback(cb func(phase Phase, moveCount int)) Option {
	return func(c *config) {
		c.phaseCallback = cb
	}
}
