package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solve statuses.
const (
	StatusRunning = "running"
	StatusSolved  = "solved"
	StatusStuck   = "stuck"
	StatusFailed  = "failed" // the logs could not be stored completely
)

// timeFormat has fixed-width fractions so stored times sort as text.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

// Solve represents one solver run in the database.
type Solve struct {
	SolveID            string
	StartedAt          time.Time
	DurationMs         *int64
	ScrambleText       *string
	StartState         string
	Status             string
	StuckPhase         *string
	RawMoveCount       int
	OptimizedMoveCount int
	Notes              *string
	AppVersion         *string
}

// SolveStats aggregates all recorded runs.
type SolveStats struct {
	Total           int
	Solved          int
	Stuck           int
	AvgRawMoves     float64
	AvgOptimized    float64
	MinOptimized    int
	MaxOptimized    int
	AvgDurationMs   float64
	TotalDurationMs int64
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create records a new run from its starting state and returns its ID.
func (r *SolveRepository) Create(startState, scramble, notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, started_at, scramble_text, start_state, status, notes, app_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeFormat), nullable(scramble), startState, StatusRunning,
		nullable(notes), nullable(appVersion))

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// Finish stores the outcome of a run. stuckPhase is empty for a solved cube.
func (r *SolveRepository) Finish(solveID, status, stuckPhase string, rawMoves, optimizedMoves int, durationMs int64) error {
	result, err := r.db.Exec(`
		UPDATE solves
		SET status = ?, stuck_phase = ?, raw_move_count = ?, optimized_move_count = ?, duration_ms = ?
		WHERE solve_id = ?
	`, status, nullable(stuckPhase), rawMoves, optimizedMoves, durationMs, solveID)

	if err != nil {
		return fmt.Errorf("failed to finish solve: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to finish solve: %s not found", solveID)
	}

	return nil
}

const solveColumns = `solve_id, started_at, duration_ms, scramble_text, start_state, status,
	stuck_phase, raw_move_count, optimized_move_count, notes, app_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var startedAtStr string

	err := row.Scan(
		&s.SolveID, &startedAtStr, &s.DurationMs, &s.ScrambleText, &s.StartState, &s.Status,
		&s.StuckPhase, &s.RawMoveCount, &s.OptimizedMoveCount, &s.Notes, &s.AppVersion,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(timeFormat, startedAtStr)
	return &s, nil
}

// Get retrieves a solve by ID. A missing solve yields nil, nil.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT `+solveColumns+`
		FROM solves
		WHERE solve_id = ?
	`, solveID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}

	return s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast() (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT ` + solveColumns + `
		FROM solves
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}

	return s, nil
}

// FindByPrefix resolves an abbreviated solve ID, as printed by history. The
// prefix is matched literally.
func (r *SolveRepository) FindByPrefix(prefix string) (*Solve, error) {
	rows, err := r.db.Query(`
		SELECT solve_id FROM solves
		WHERE substr(solve_id, 1, length(?)) = ?
		LIMIT 2
	`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find solve: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan solve id: %w", err)
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to find solve: %w", err)
	}

	switch len(ids) {
	case 0:
		return nil, nil
	case 1:
		return r.Get(ids[0])
	default:
		return nil, fmt.Errorf("solve ID prefix %q is ambiguous", prefix)
	}
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}

	return solves, rows.Err()
}

// Delete deletes a solve and all related data (cascading).
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}

// Stats aggregates every finished run.
func (r *SolveRepository) Stats() (*SolveStats, error) {
	var st SolveStats
	var avgRaw, avgOpt, avgDur sql.NullFloat64
	var minOpt, maxOpt, totalDur sql.NullInt64

	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'solved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'stuck' THEN 1 ELSE 0 END), 0),
			AVG(CASE WHEN status = 'solved' THEN raw_move_count END),
			AVG(CASE WHEN status = 'solved' THEN optimized_move_count END),
			MIN(CASE WHEN status = 'solved' THEN optimized_move_count END),
			MAX(CASE WHEN status = 'solved' THEN optimized_move_count END),
			AVG(duration_ms),
			SUM(duration_ms)
		FROM solves
		WHERE status != 'running'
	`).Scan(&st.Total, &st.Solved, &st.Stuck, &avgRaw, &avgOpt, &minOpt, &maxOpt, &avgDur, &totalDur)

	if err != nil {
		return nil, fmt.Errorf("failed to get solve stats: %w", err)
	}

	st.AvgRawMoves = avgRaw.Float64
	st.AvgOptimized = avgOpt.Float64
	st.MinOptimized = int(minOpt.Int64)
	st.MaxOptimized = int(maxOpt.Int64)
	st.AvgDurationMs = avgDur.Float64
	st.TotalDurationMs = totalDur.Int64

	return &st, nil
}
