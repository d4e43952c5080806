package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

var replayCmd = &cobra.Command{
	Use:   "replay [solve-id]",
	Short: "Replay a recorded solve move by move",
	Long: `Replay a recorded solve in the terminal, applying one move at a time to the
starting cube. Without an ID the most recent solve is replayed.

Usage:
  cubesolver replay                      # Replay the last solve
  cubesolver replay 3f2a9c1e --log raw   # Replay the raw solver output
  cubesolver replay --speed 100          # 100ms per move
  cubesolver replay --step               # Step through moves manually`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replaySpeedMs int
	replayStep    bool
	replayLog     string
)

const (
	minReplaySpeedMs = 25
	maxReplaySpeedMs = 3200
	recentMoves      = 20
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().IntVarP(&replaySpeedMs, "speed", "s", 0, "Milliseconds per move (default: replay_speed_ms from config)")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through moves manually")
	replayCmd.Flags().StringVar(&replayLog, "log", storage.LogRaw, "Move log to replay (raw, optimized)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	if len(args) > 0 {
		id = args[0]
	}
	run, err := resolveRun(db, id)
	if err != nil {
		return err
	}

	speed := replaySpeedMs
	if speed == 0 {
		speed = cfg.ReplaySpeedMs
	}

	model, err := newReplayModel(run, replayLog, speed, replayStep)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	return nil
}

// replayModel steps a tracker through the moves of a recorded run.
type replayModel struct {
	run       *recorder.Run
	logName   string
	moves     []types.Move
	index     int // moves applied
	speedMs   int
	stepMode  bool
	paused    bool
	tracker   *cube.Tracker
	reached   []reachedStage
	gen       int // invalidates ticks scheduled before a pause or reset
	err       error
	quitting  bool
	debugMode bool
}

type reachedStage struct {
	phase cube.DetectedPhase
	at    int
}

type replayStepMsg struct{ gen int }

func newReplayModel(run *recorder.Run, logName string, speedMs int, stepMode bool) (*replayModel, error) {
	var moves []types.Move
	switch logName {
	case storage.LogRaw:
		moves = run.Moves
	case storage.LogOptimized:
		moves = run.Optimized
	default:
		return nil, fmt.Errorf("unknown log: %s (use raw or optimized)", logName)
	}

	m := &replayModel{
		run:      run,
		logName:  logName,
		moves:    moves,
		speedMs:  clampSpeed(speedMs),
		stepMode: stepMode,
		paused:   stepMode,
		tracker:  cube.NewTracker(run.Start),
	}
	m.tracker.SetPhaseCallback(func(phase cube.DetectedPhase, moveIndex int) {
		m.reached = append(m.reached, reachedStage{phase: phase, at: moveIndex})
	})
	return m, nil
}

func clampSpeed(ms int) int {
	return min(max(ms, minReplaySpeedMs), maxReplaySpeedMs)
}

func (m *replayModel) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return m.scheduleNext()
}

func (m *replayModel) scheduleNext() tea.Cmd {
	if m.done() {
		return nil
	}
	gen := m.gen
	return tea.Tick(time.Duration(m.speedMs)*time.Millisecond, func(time.Time) tea.Msg {
		return replayStepMsg{gen: gen}
	})
}

func (m *replayModel) done() bool {
	return m.index >= len(m.moves) || m.err != nil
}

func (m *replayModel) step() {
	if m.done() {
		return
	}
	if err := m.tracker.ApplyMove(m.moves[m.index]); err != nil {
		m.err = err
		return
	}
	m.index++
}

func (m *replayModel) reset() {
	m.gen++
	m.index = 0
	m.err = nil
	m.reached = nil
	m.tracker.Reset()
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.paused {
				m.step()
				return m, nil
			}
			m.paused = true
			m.gen++

		case "p":
			if m.stepMode {
				return m, nil
			}
			m.paused = !m.paused
			m.gen++
			if !m.paused {
				return m, m.scheduleNext()
			}

		case "r":
			m.reset()
			if !m.paused {
				return m, m.scheduleNext()
			}

		case "d":
			m.debugMode = !m.debugMode

		case "+", "=":
			m.speedMs = clampSpeed(m.speedMs / 2)

		case "-":
			m.speedMs = clampSpeed(m.speedMs * 2)
		}

	case replayStepMsg:
		if msg.gen != m.gen || m.paused {
			return m, nil
		}
		m.step()
		return m, m.scheduleNext()
	}

	return m, nil
}

// solverPhase returns the solver phase that produced the last applied move.
// Phase boundaries are only known for the raw log.
func (m *replayModel) solverPhase() (solver.Phase, bool) {
	if m.logName != storage.LogRaw || len(m.run.Segments) == 0 {
		return 0, false
	}
	i := max(m.index-1, 0)
	for _, seg := range m.run.Segments {
		if seg.MoveCount > 0 && i >= seg.StartIndex && i <= seg.EndIndex {
			return solver.ParsePhase(seg.PhaseKey)
		}
	}
	return 0, false
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cube Solve Replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Solve %s  Move %d/%d (%s)", shortID(m.run.SolveID), m.index, len(m.moves), m.logName)
	if m.stepMode {
		progress += " [STEP MODE]"
	} else if m.paused {
		progress += " [PAUSED]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%dms/move)\n\n", m.speedMs))

	if p, ok := m.solverPhase(); ok {
		b.WriteString(fmt.Sprintf("Solver phase: %s\n", phaseStyle.Render(p.DisplayName())))
	}
	if m.tracker.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube state:   %s\n", phaseStyle.Render("SOLVED!")))
	} else {
		b.WriteString(fmt.Sprintf("Reached:      %s\n", statusStyle.Render(m.tracker.HighestPhase().DisplayName())))
	}
	b.WriteString("\n")

	b.WriteString(renderNet(m.tracker.Cube()))
	b.WriteString("\n")

	if m.index > 0 {
		b.WriteString("Moves: ")
		start := 0
		if m.index > recentMoves {
			start = m.index - recentMoves
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(strings.Join(moveStrings(m.moves[start:m.index], true), " ")))
		b.WriteString("\n")
	}
	if m.index < len(m.moves) {
		next := m.moves[m.index]
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: %s (%s)", next.Notation(), string(next))))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error at move %d: %v", m.index, m.err)))
		b.WriteString("\n")
	}

	if m.debugMode {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("DEBUG"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Flat:     %s\n", m.tracker.Cube().FlatString()))
		b.WriteString(fmt.Sprintf("Detected: %s (front %c)\n", m.tracker.CurrentPhase(), m.tracker.Front()))
		for _, r := range m.reached {
			b.WriteString(fmt.Sprintf("  %-24s at move %d\n", r.phase.DisplayName(), r.at))
		}
	}

	b.WriteString("\n")

	help := "SPACE/n=next  p=pause  r=reset  d=debug  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next move  r=reset  d=debug  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}
