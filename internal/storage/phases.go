package storage

import (
	"database/sql"
	"fmt"
)

// PhaseDef represents a phase definition.
type PhaseDef struct {
	PhaseKey    string
	DisplayName string
	OrderIndex  int
	Description *string
	IsActive    bool
}

// PhaseSegment is the stretch of the raw move log one phase produced.
// EndIndex is inclusive; an empty phase has EndIndex = StartIndex - 1.
type PhaseSegment struct {
	SegmentID  int64
	SolveID    string
	PhaseKey   string
	StartIndex int
	EndIndex   int
	MoveCount  int
}

// PhaseAverage aggregates one phase across solved runs.
type PhaseAverage struct {
	PhaseKey    string
	DisplayName string
	Solves      int
	AvgMoves    float64
	MinMoves    int
	MaxMoves    int
}

// PhaseRepository provides CRUD operations for phases.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// GetAllPhaseDefs retrieves all active phase definitions in order.
func (r *PhaseRepository) GetAllPhaseDefs() ([]PhaseDef, error) {
	rows, err := r.db.Query(`
		SELECT phase_key, display_name, order_index, description, is_active
		FROM phase_defs
		WHERE is_active = 1
		ORDER BY order_index
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to get phase defs: %w", err)
	}
	defer rows.Close()

	var defs []PhaseDef
	for rows.Next() {
		var d PhaseDef
		var isActive int
		err := rows.Scan(&d.PhaseKey, &d.DisplayName, &d.OrderIndex, &d.Description, &isActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phase def: %w", err)
		}
		d.IsActive = isActive == 1
		defs = append(defs, d)
	}

	return defs, rows.Err()
}

// GetPhaseDef retrieves a specific phase definition.
func (r *PhaseRepository) GetPhaseDef(phaseKey string) (*PhaseDef, error) {
	var d PhaseDef
	var isActive int
	err := r.db.QueryRow(`
		SELECT phase_key, display_name, order_index, description, is_active
		FROM phase_defs
		WHERE phase_key = ?
	`, phaseKey).Scan(&d.PhaseKey, &d.DisplayName, &d.OrderIndex, &d.Description, &isActive)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase def: %w", err)
	}
	d.IsActive = isActive == 1

	return &d, nil
}

// SaveSegments replaces the phase segments of a solve.
func (r *PhaseRepository) SaveSegments(solveID string, segments []PhaseSegment) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM phase_segments WHERE solve_id = ?", solveID); err != nil {
			return fmt.Errorf("failed to delete phase segments: %w", err)
		}

		for _, s := range segments {
			_, err := tx.Exec(`
				INSERT INTO phase_segments (solve_id, phase_key, start_index, end_index, move_count)
				VALUES (?, ?, ?, ?, ?)
			`, solveID, s.PhaseKey, s.StartIndex, s.EndIndex, s.MoveCount)
			if err != nil {
				return fmt.Errorf("failed to create phase segment %s: %w", s.PhaseKey, err)
			}
		}
		return nil
	})
}

// GetPhaseSegments retrieves all phase segments for a solve in log order.
func (r *PhaseRepository) GetPhaseSegments(solveID string) ([]PhaseSegment, error) {
	rows, err := r.db.Query(`
		SELECT segment_id, solve_id, phase_key, start_index, end_index, move_count
		FROM phase_segments
		WHERE solve_id = ?
		ORDER BY start_index, segment_id
	`, solveID)

	if err != nil {
		return nil, fmt.Errorf("failed to get phase segments: %w", err)
	}
	defer rows.Close()

	var segments []PhaseSegment
	for rows.Next() {
		var s PhaseSegment
		err := rows.Scan(&s.SegmentID, &s.SolveID, &s.PhaseKey, &s.StartIndex, &s.EndIndex, &s.MoveCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, s)
	}

	return segments, rows.Err()
}

// GetPhaseAverages aggregates phase move counts over solved runs, in phase
// order.
func (r *PhaseRepository) GetPhaseAverages() ([]PhaseAverage, error) {
	rows, err := r.db.Query(`
		SELECT d.phase_key, d.display_name, COUNT(s.segment_id),
			COALESCE(AVG(s.move_count), 0), COALESCE(MIN(s.move_count), 0), COALESCE(MAX(s.move_count), 0)
		FROM phase_defs d
		LEFT JOIN phase_segments s ON s.phase_key = d.phase_key
			AND s.solve_id IN (SELECT solve_id FROM solves WHERE status = 'solved')
		WHERE d.is_active = 1
		GROUP BY d.phase_key
		ORDER BY d.order_index
	`)

	if err != nil {
		return nil, fmt.Errorf("failed to get phase averages: %w", err)
	}
	defer rows.Close()

	var avgs []PhaseAverage
	for rows.Next() {
		var a PhaseAverage
		if err := rows.Scan(&a.PhaseKey, &a.DisplayName, &a.Solves, &a.AvgMoves, &a.MinMoves, &a.MaxMoves); err != nil {
			return nil, fmt.Errorf("failed to scan phase average: %w", err)
		}
		avgs = append(avgs, a)
	}

	return avgs, rows.Err()
}
