package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"drowsyguard/internal/models"
)

// SessionRepository implements repository.SessionRepository for SQLite.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Start opens a new monitoring session for the user.
func (r *SessionRepository) Start(userID int64) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO sessions (user_id, start_time)
		VALUES (?, ?)
	`, userID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}

	return result.LastInsertId()
}

// End closes a monitoring session. Ending an already-ended session keeps
// the original end time.
func (r *SessionRepository) End(sessionID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		UPDATE sessions SET end_time = ?
		WHERE id = ? AND end_time IS NULL
	`, time.Now(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// RecordDetection bumps the session's detection counters.
func (r *SessionRepository) RecordDetection(sessionID int64, drowsy bool) error {
	r.db.Lock()
	defer r.db.Unlock()

	drowsyInc := 0
	if drowsy {
		drowsyInc = 1
	}

	_, err := r.db.Conn().Exec(`
		UPDATE sessions
		SET total_detections = total_detections + 1,
		    drowsy_detections = drowsy_detections + ?
		WHERE id = ?
	`, drowsyInc, sessionID)
	if err != nil {
		return fmt.Errorf("failed to record detection: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(sessionID int64) (*models.Session, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var s models.Session
	err := r.db.Conn().QueryRow(`
		SELECT id, user_id, start_time, end_time, total_detections, drowsy_detections
		FROM sessions WHERE id = ?
	`, sessionID).Scan(&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &s.TotalDetections, &s.DrowsyDetections)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetByUser retrieves a user's sessions, most recent first.
func (r *SessionRepository) GetByUser(userID int64, limit int) ([]models.Session, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT id, user_id, start_time, end_time, total_detections, drowsy_detections
		FROM sessions WHERE user_id = ?
		ORDER BY start_time DESC
	`
	args := []interface{}{userID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &s.TotalDetections, &s.DrowsyDetections); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

// Dashboard aggregates the user's monitoring history. The safety score is
// the percentage of detections that were not drowsy; a user with no
// detections scores 100.
func (r *SessionRepository) Dashboard(userID int64) (*models.Dashboard, error) {
	r.db.RLock()

	d := &models.Dashboard{}
	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(total_detections), 0),
		       COALESCE(SUM(drowsy_detections), 0)
		FROM sessions WHERE user_id = ?
	`, userID).Scan(&d.TotalSessions, &d.TotalDetections, &d.DrowsyDetections)
	r.db.RUnlock()

	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", err)
	}

	d.SafetyScore = 100.0
	if d.TotalDetections > 0 {
		d.SafetyScore = 100.0 * float64(d.TotalDetections-d.DrowsyDetections) / float64(d.TotalDetections)
	}

	recent, err := r.GetByUser(userID, 5)
	if err != nil {
		return nil, err
	}
	d.RecentSessions = recent

	return d, nil
}
