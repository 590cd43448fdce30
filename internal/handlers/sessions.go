package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"drowsyguard/internal/logger"
	"drowsyguard/internal/models"
	"drowsyguard/internal/repository"
)

// StartSessionHandler opens a new monitoring session for the logged-in user.
func StartSessionHandler(sessions repository.SessionRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, _ := store.UserID(r)
		id, err := sessions.Start(userID)
		if err != nil {
			logger.Error("Failed to start session: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		logger.Info("Session %d started for user %d", id, userID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int64{"session_id": id})
	}
}

// EndSessionHandler closes a monitoring session owned by the caller.
func EndSessionHandler(sessions repository.SessionRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sessionID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid session id", http.StatusBadRequest)
			return
		}

		userID, _ := store.UserID(r)
		session, err := sessions.GetByID(sessionID)
		if err != nil {
			logger.Error("Failed to load session %d: %v", sessionID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if session == nil || session.UserID != userID {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		if err := sessions.End(sessionID); err != nil {
			logger.Error("Failed to end session %d: %v", sessionID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListSessionsHandler returns the caller's sessions, most recent first.
func ListSessionsHandler(sessions repository.SessionRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := store.UserID(r)

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		list, err := sessions.GetByUser(userID, limit)
		if err != nil {
			logger.Error("Failed to list sessions: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []models.Session{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// SaveEventHandler persists one detection event and bumps the owning
// session's counters.
func SaveEventHandler(sessions repository.SessionRepository, events repository.EventRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		userID, _ := store.UserID(r)
		session, err := sessions.GetByID(req.SessionID)
		if err != nil {
			logger.Error("Failed to load session %d: %v", req.SessionID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if session == nil || session.UserID != userID {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		event := &models.Event{
			SessionID:  req.SessionID,
			Prediction: req.Prediction,
			Confidence: req.Confidence,
			IsDrowsy:   req.IsDrowsy,
			Timestamp:  time.Now(),
		}

		id, err := events.Insert(event)
		if err != nil {
			logger.Error("Failed to save event: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		event.ID = id

		if err := sessions.RecordDetection(req.SessionID, req.IsDrowsy); err != nil {
			logger.Error("Failed to update session counters: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(event)
	}
}

// ListEventsHandler returns a session's events in chronological order.
func ListEventsHandler(sessions repository.SessionRepository, events repository.EventRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid session id", http.StatusBadRequest)
			return
		}

		userID, _ := store.UserID(r)
		session, err := sessions.GetByID(sessionID)
		if err != nil {
			logger.Error("Failed to load session %d: %v", sessionID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if session == nil || session.UserID != userID {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		list, err := events.GetBySession(sessionID)
		if err != nil {
			logger.Error("Failed to list events: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []models.Event{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// DashboardHandler returns the caller's aggregate monitoring history.
func DashboardHandler(sessions repository.SessionRepository, store *SessionStore, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := store.UserID(r)

		dashboard, err := sessions.Dashboard(userID)
		if err != nil {
			logger.Error("Failed to build dashboard: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if dashboard.RecentSessions == nil {
			dashboard.RecentSessions = []models.Session{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dashboard)
	}
}
