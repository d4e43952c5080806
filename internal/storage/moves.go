package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Move log names.
const (
	LogRaw       = "raw"
	LogOptimized = "optimized"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	Log       string
	MoveIndex int
	Token     string
	Notation  string
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// CreateBatch stores a whole move log in a single transaction, replacing
// any log of the same name already stored for the solve.
func (r *MoveRepository) CreateBatch(solveID, log string, moves []types.Move) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM moves WHERE solve_id = ? AND log = ?", solveID, log); err != nil {
			return fmt.Errorf("failed to clear %s moves: %w", log, err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO moves (solve_id, log, move_index, token, notation)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare move insert: %w", err)
		}
		defer stmt.Close()

		for i, m := range moves {
			if _, err := stmt.Exec(solveID, log, i, string(m), m.Notation()); err != nil {
				return fmt.Errorf("failed to create move %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves one move log of a solve in order.
func (r *MoveRepository) GetBySolve(solveID, log string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, log, move_index, token, notation
		FROM moves
		WHERE solve_id = ? AND log = ?
		ORDER BY move_index
	`, solveID, log)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.SolveID, &m.Log, &m.MoveIndex, &m.Token, &m.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves in one log of a solve.
func (r *MoveRepository) Count(solveID, log string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE solve_id = ? AND log = ?", solveID, log).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords back to move tokens.
func ToMoves(records []MoveRecord) ([]types.Move, error) {
	moves := make([]types.Move, len(records))
	for i, r := range records {
		m, err := types.ParseMove(r.Token)
		if err != nil {
			return nil, fmt.Errorf("move %d of solve %s: %w", r.MoveIndex, r.SolveID, err)
		}
		moves[i] = m
	}
	return moves, nil
}
