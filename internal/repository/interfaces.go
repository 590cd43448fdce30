package repository

import (
	"drowsyguard/internal/models"
)

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	Insert(user *models.User) (int64, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

// SessionRepository defines the interface for monitoring session operations.
type SessionRepository interface {
	Start(userID int64) (int64, error)
	End(sessionID int64) error
	RecordDetection(sessionID int64, drowsy bool) error
	GetByID(sessionID int64) (*models.Session, error)
	GetByUser(userID int64, limit int) ([]models.Session, error)
	Dashboard(userID int64) (*models.Dashboard, error)
}

// EventRepository defines the interface for detection event operations.
type EventRepository interface {
	Insert(event *models.Event) (int64, error)
	GetBySession(sessionID int64) ([]models.Event, error)
	DeleteBySession(sessionID int64) error
}
