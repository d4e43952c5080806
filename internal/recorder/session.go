// Package recorder runs the solver against a cube and records the run:
// the starting state, the raw and optimized move logs, per-phase segments
// and the events the solver produced along the way.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateSolving
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSolving:
		return "solving"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PhaseEvent is the payload of a phase_complete event.
type PhaseEvent struct {
	Phase string `json:"phase"`
	Moves int    `json:"moves"`
	Total int    `json:"total"`
}

// StuckEvent is the payload of a stuck event.
type StuckEvent struct {
	Phase  string `json:"phase"`
	Reason string `json:"reason"`
	Total  int    `json:"total"`
}

// SolvedEvent is the payload of a solved event.
type SolvedEvent struct {
	Raw       int `json:"raw"`
	Optimized int `json:"optimized"`
}

// Option configures a Session.
type Option func(*config)

type config struct {
	logger        logrus.FieldLogger
	optimize      bool
	appVersion    string
	maxIterations int
	onPhase       func(phase solver.Phase, moveCount int)
}

func defaultConfig() *config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &config{
		logger:        l,
		optimize:      true,
		maxIterations: solver.DefaultMaxIterations,
	}
}

// WithLogger sets the logger for the session and the solvers it runs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOptimize controls whether the optimized log is computed. When off,
// the optimized log is stored as a copy of the raw one.
func WithOptimize(on bool) Option {
	return func(c *config) {
		c.optimize = on
	}
}

// WithAppVersion sets the version stamped on every recorded run.
func WithAppVersion(v string) Option {
	return func(c *config) {
		c.appVersion = v
	}
}

// WithMaxIterations is passed through to the solver.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}

// WithPhaseCallback sets a callback that fires after each solver phase.
func WithPhaseCallback(cb func(phase solver.Phase, moveCount int)) Option {
	return func(c *config) {
		c.onPhase = cb
	}
}

// Session records solver runs into a database, one at a time.
type Session struct {
	cfg *config
	log logrus.FieldLogger

	mu      sync.RWMutex
	state   SessionState
	solveID string

	// Repositories
	solveRepo *storage.SolveRepository
	moveRepo  *storage.MoveRepository
	phaseRepo *storage.PhaseRepository
	eventRepo *storage.EventRepository
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{
		cfg:       cfg,
		log:       cfg.logger,
		state:     StateIdle,
		solveRepo: storage.NewSolveRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
		phaseRepo: storage.NewPhaseRepository(db),
		eventRepo: storage.NewEventRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SolveID returns the ID of the current or last run.
func (s *Session) SolveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solveID
}

type checkpoint struct {
	phase solver.Phase
	total int
	tsMs  int64
}

// Record solves c and stores the run. c is left in whatever state the
// solver reached. scramble is only stored, never applied.
//
// A stuck solve is still recorded, with status stuck; the returned Run is
// then non-nil alongside the solver error.
func (s *Session) Record(c *cube.Cube, scramble []types.Move, notes string) (*Run, error) {
	s.mu.Lock()
	if s.state == StateSolving {
		s.mu.Unlock()
		return nil, fmt.Errorf("solve already in progress")
	}
	s.state = StateSolving
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateEnded
		s.mu.Unlock()
	}()

	run := &Run{
		Start:    c.Clone(),
		Scramble: scramble,
		Notes:    notes,
	}

	id, err := s.solveRepo.Create(c.FlatString(), notation.FormatSequence(scramble), notes, s.cfg.appVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create solve: %w", err)
	}
	run.SolveID = id
	run.StartedAt = time.Now()

	s.mu.Lock()
	s.solveID = id
	s.mu.Unlock()

	log := s.log.WithField("solve_id", id)
	log.Debug("recording solve")

	var checkpoints []checkpoint
	sv := solver.New(c,
		solver.WithLogger(log),
		solver.WithMaxIterations(s.cfg.maxIterations),
		solver.WithPhaseCallback(func(p solver.Phase, n int) {
			checkpoints = append(checkpoints, checkpoint{p, n, time.Since(run.StartedAt).Milliseconds()})
			if s.cfg.onPhase != nil {
				s.cfg.onPhase(p, n)
			}
		}),
	)

	_, solveErr := sv.Solve()
	run.Duration = time.Since(run.StartedAt)
	run.Moves = sv.Moves()
	if s.cfg.optimize {
		run.Optimized = analysis.OptimizeMoves(run.Moves)
	} else {
		run.Optimized = append([]types.Move(nil), run.Moves...)
	}
	run.Segments = segments(id, checkpoints)
	run.Status = storage.StatusSolved

	var stuck *solver.StuckError
	if errors.As(solveErr, &stuck) {
		run.Status = storage.StatusStuck
		run.StuckPhase = stuck.Phase.String()
		if len(checkpoints) < len(solver.Phases()) {
			start := 0
			if len(checkpoints) > 0 {
				start = checkpoints[len(checkpoints)-1].total
			}
			run.Segments = append(run.Segments, segment(id, stuck.Phase, start, len(run.Moves)))
		}
	} else if solveErr != nil {
		run.Status = storage.StatusStuck
	}

	if err := s.store(run, checkpoints, stuck); err != nil {
		run.Status = storage.StatusFailed
		ms := run.Duration.Milliseconds()
		if ferr := s.solveRepo.Finish(id, storage.StatusFailed, run.StuckPhase, 0, 0, ms); ferr != nil {
			log.WithError(ferr).Warn("could not mark solve as failed")
		}
		return run, err
	}

	log.WithFields(logrus.Fields{
		"status":    run.Status,
		"raw":       len(run.Moves),
		"optimized": len(run.Optimized),
	}).Info("solve recorded")

	return run, solveErr
}

func (s *Session) store(run *Run, checkpoints []checkpoint, stuck *solver.StuckError) error {
	id := run.SolveID

	if err := s.moveRepo.CreateBatch(id, storage.LogRaw, run.Moves); err != nil {
		return fmt.Errorf("failed to store raw moves: %w", err)
	}
	if err := s.moveRepo.CreateBatch(id, storage.LogOptimized, run.Optimized); err != nil {
		return fmt.Errorf("failed to store optimized moves: %w", err)
	}
	if err := s.phaseRepo.SaveSegments(id, run.Segments); err != nil {
		return fmt.Errorf("failed to store phase segments: %w", err)
	}

	prev := 0
	for _, cp := range checkpoints {
		ev := PhaseEvent{Phase: cp.phase.String(), Moves: cp.total - prev, Total: cp.total}
		if _, err := s.eventRepo.Create(id, cp.tsMs, storage.EventPhaseComplete, ev); err != nil {
			return fmt.Errorf("failed to store phase event: %w", err)
		}
		prev = cp.total
	}

	tsMs := run.Duration.Milliseconds()
	var err error
	if stuck != nil {
		_, err = s.eventRepo.Create(id, tsMs, storage.EventStuck, StuckEvent{
			Phase:  stuck.Phase.String(),
			Reason: stuck.Reason,
			Total:  len(run.Moves),
		})
	} else if run.Status == storage.StatusSolved {
		_, err = s.eventRepo.Create(id, tsMs, storage.EventSolved, SolvedEvent{
			Raw:       len(run.Moves),
			Optimized: len(run.Optimized),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to store final event: %w", err)
	}

	err = s.solveRepo.Finish(id, run.Status, run.StuckPhase, len(run.Moves), len(run.Optimized), tsMs)
	if err != nil {
		return fmt.Errorf("failed to finish solve: %w", err)
	}
	return nil
}

// segments turns the running move totals reported after each phase into
// index ranges of the raw log.
func segments(solveID string, checkpoints []checkpoint) []storage.PhaseSegment {
	var out []storage.PhaseSegment
	start := 0
	for _, cp := range checkpoints {
		out = append(out, segment(solveID, cp.phase, start, cp.total))
		start = cp.total
	}
	return out
}

func segment(solveID string, p solver.Phase, start, end int) storage.PhaseSegment {
	return storage.PhaseSegment{
		SolveID:    solveID,
		PhaseKey:   p.String(),
		StartIndex: start,
		EndIndex:   end - 1,
		MoveCount:  end - start,
	}
}
