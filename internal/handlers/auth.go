package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"drowsyguard/internal/logger"
	"drowsyguard/internal/models"
	"drowsyguard/internal/repository"
)

// SessionStore maps session cookies to user IDs. In-memory only; a restart
// logs everyone out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]int64)}
}

// Put registers a session ID for a user.
func (s *SessionStore) Put(sessionID string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
}

// Get resolves a session ID to a user ID.
func (s *SessionStore) Get(sessionID string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[sessionID]
	return userID, ok
}

// Delete removes a session.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// UserID resolves the authenticated user from the request cookie.
func (s *SessionStore) UserID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return 0, false
	}
	return s.Get(cookie.Value)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= 255
}

func validatePassword(password string) bool {
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	hasLetter := false
	hasNumber := false
	for _, char := range password {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
			hasLetter = true
		}
		if char >= '0' && char <= '9' {
			hasNumber = true
		}
	}
	return hasLetter && hasNumber
}

func validateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30 && usernameRegex.MatchString(username)
}

func generateSessionID(email string) string {
	return fmt.Sprintf("%s-%s-%d", email, time.Now().Format("20060102150405"), time.Now().UnixNano()%1e9)
}

// RegisterHandler creates a new user account.
func RegisterHandler(users repository.UserRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if req.Email == "" || req.Password == "" || req.Username == "" {
			http.Error(w, "All fields are required", http.StatusBadRequest)
			return
		}
		if !validateEmail(req.Email) {
			http.Error(w, "Invalid email format", http.StatusBadRequest)
			return
		}
		if !validatePassword(req.Password) {
			http.Error(w, "Password must be 8-72 characters with at least one letter and one number", http.StatusBadRequest)
			return
		}
		if !validateUsername(req.Username) {
			http.Error(w, "Username must be 3-30 characters, alphanumeric and underscore only", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Password hashing error: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		user := &models.User{
			Username:     req.Username,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}

		id, err := users.Insert(user)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				http.Error(w, "Email already registered", http.StatusConflict)
			} else {
				logger.Error("Registration failed: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}
		user.ID = id
		user.PasswordHash = ""

		logger.Info("User registered: %s", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}

// LoginHandler authenticates a user and issues a session cookie.
func LoginHandler(users repository.UserRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if req.Email == "" || req.Password == "" {
			http.Error(w, "Email and password are required", http.StatusBadRequest)
			return
		}

		user, err := users.GetByEmail(req.Email)
		if err != nil {
			logger.Error("Login lookup failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}

		sessionID := generateSessionID(user.Email)
		store.Put(sessionID, user.ID)

		http.SetCookie(w, &http.Cookie{
			Name:     "session_id",
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
		})

		logger.Info("User logged in: %s", user.Email)

		user.PasswordHash = ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

// LogoutHandler removes the session and clears the cookie.
func LogoutHandler(store *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("session_id"); err == nil {
			store.Delete(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "session_id",
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// CurrentUserHandler returns the authenticated user's profile.
func CurrentUserHandler(users repository.UserRepository, store *SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := store.UserID(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := users.GetByID(userID)
		if err != nil || user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		user.PasswordHash = ""

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}
