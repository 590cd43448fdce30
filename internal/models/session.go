package models

import "time"

// Session is one monitoring run for a user.
type Session struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	TotalDetections  int        `json:"total_detections"`
	DrowsyDetections int        `json:"drowsy_detections"`
}

// Event is one persisted drowsiness observation within a session.
type Event struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	IsDrowsy   bool      `json:"is_drowsy"`
	Timestamp  time.Time `json:"timestamp"`
}

type CreateEventRequest struct {
	SessionID  int64   `json:"session_id"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	IsDrowsy   bool    `json:"is_drowsy"`
}

// Dashboard aggregates a user's monitoring history.
type Dashboard struct {
	TotalSessions    int       `json:"total_sessions"`
	TotalDetections  int       `json:"total_detections"`
	DrowsyDetections int       `json:"drowsy_detections"`
	SafetyScore      float64   `json:"safety_score"`
	RecentSessions   []Session `json:"recent_sessions"`
}
