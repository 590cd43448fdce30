package sqlite

import (
	"fmt"

	"drowsyguard/internal/models"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a detection event to the database.
func (r *EventRepository) Insert(event *models.Event) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO events (session_id, prediction, confidence, is_drowsy, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, event.SessionID, event.Prediction, event.Confidence, event.IsDrowsy, event.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	return result.LastInsertId()
}

// GetBySession retrieves a session's events in chronological order.
func (r *EventRepository) GetBySession(sessionID int64) ([]models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, session_id, prediction, confidence, is_drowsy, timestamp
		FROM events WHERE session_id = ?
		ORDER BY timestamp ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Prediction, &e.Confidence, &e.IsDrowsy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// DeleteBySession removes all events for a session.
func (r *EventRepository) DeleteBySession(sessionID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM events WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}
