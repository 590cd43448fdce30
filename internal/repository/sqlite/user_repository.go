package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"drowsyguard/internal/models"
)

// UserRepository implements repository.UserRepository for SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Insert adds a new user record to the database.
func (r *UserRepository) Insert(user *models.User) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO users (username, email, phone, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.Phone, user.PasswordHash, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.LastInsertId()
}

// GetByEmail retrieves a user by email, password hash included.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, email, phone, password_hash, created_at
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, email, phone, password_hash, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
