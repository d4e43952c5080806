package storage

import (
	"encoding/json"
	"fmt"
)

// Event types recorded during a run.
const (
	EventPhaseComplete = "phase_complete"
	EventStuck         = "stuck"
	EventSolved        = "solved"
)

// Event is a timestamped solver event. TsMs is relative to the start of the run.
type Event struct {
	EventID     int64
	SolveID     string
	TsMs        int64
	EventType   string
	PayloadJSON string
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if err := json.Unmarshal([]byte(e.PayloadJSON), v); err != nil {
		return fmt.Errorf("failed to decode %s event payload: %w", e.EventType, err)
	}
	return nil
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create stores an event with a JSON-encoded payload and returns its ID.
func (r *EventRepository) Create(solveID string, tsMs int64, eventType string, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event payload: %w", err)
	}

	result, err := r.db.Exec(`
		INSERT INTO events (solve_id, ts_ms, event_type, payload_json)
		VALUES (?, ?, ?, ?)
	`, solveID, tsMs, eventType, string(data))

	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// GetBySolve retrieves all events for a solve.
func (r *EventRepository) GetBySolve(solveID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, solve_id, ts_ms, event_type, payload_json
		FROM events
		WHERE solve_id = ?
		ORDER BY ts_ms, event_id
	`, solveID)
}

// GetByType retrieves all events of a specific type for a solve.
func (r *EventRepository) GetByType(solveID, eventType string) ([]Event, error) {
	return r.query(`
		SELECT event_id, solve_id, ts_ms, event_type, payload_json
		FROM events
		WHERE solve_id = ? AND event_type = ?
		ORDER BY ts_ms, event_id
	`, solveID, eventType)
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.EventID, &e.SolveID, &e.TsMs, &e.EventType, &e.PayloadJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Count returns the number of events for a solve.
func (r *EventRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
