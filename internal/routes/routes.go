package routes

import (
	"net/http"

	"drowsyguard/internal/config"
	"drowsyguard/internal/handlers"
	"drowsyguard/internal/logger"
	"drowsyguard/internal/middleware"
	"drowsyguard/internal/repository"
	"drowsyguard/internal/services"
)

// Repos groups the persistence dependencies handed to the routes.
type Repos struct {
	Users    repository.UserRepository
	Sessions repository.SessionRepository
	Events   repository.EventRepository
}

// SetupRoutes registers the API endpoints and wraps the mux with the
// authentication middleware.
func SetupRoutes(manager *services.Manager, repos Repos, store *handlers.SessionStore, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Streaming and detection
	mux.HandleFunc("/api/stream", handlers.StreamHandler(manager, logger))
	mux.HandleFunc("/api/detect", handlers.DetectHandler(manager, logger))
	mux.HandleFunc("/api/health", handlers.HealthHandler(manager))
	mux.HandleFunc("/outputs/", handlers.OutputFileHandler(manager.Artifacts()))

	// Accounts
	mux.HandleFunc("/api/users/register", handlers.RegisterHandler(repos.Users, logger))
	mux.HandleFunc("/api/users/login", handlers.LoginHandler(repos.Users, store, logger))
	mux.HandleFunc("/api/users/logout", handlers.LogoutHandler(store))
	mux.HandleFunc("/api/users/me", handlers.CurrentUserHandler(repos.Users, store))

	// Monitoring history
	mux.HandleFunc("/api/sessions/start", handlers.StartSessionHandler(repos.Sessions, store, logger))
	mux.HandleFunc("/api/sessions/end", handlers.EndSessionHandler(repos.Sessions, store, logger))
	mux.HandleFunc("/api/sessions", handlers.ListSessionsHandler(repos.Sessions, store, logger))
	mux.HandleFunc("/api/events/save", handlers.SaveEventHandler(repos.Sessions, repos.Events, store, logger))
	mux.HandleFunc("/api/events", handlers.ListEventsHandler(repos.Sessions, repos.Events, store, logger))
	mux.HandleFunc("/api/dashboard", handlers.DashboardHandler(repos.Sessions, store, logger))

	// Actuator
	mux.HandleFunc("/api/actuator/test", handlers.ActuatorTestHandler(manager))

	// Observability
	mux.Handle("/metrics", manager.Metrics().Handler())

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(logger))

	return middleware.AuthMiddleware(store, mux)
}
