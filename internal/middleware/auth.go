package middleware

import (
	"net/http"
	"strings"

	"drowsyguard/internal/handlers"
)

// openPrefixes are reachable without a session. The stream and detect
// endpoints stay open because the in-vehicle client has no login flow.
var openPrefixes = []string{
	"/api/stream",
	"/api/detect",
	"/api/health",
	"/api/users/register",
	"/api/users/login",
	"/metrics",
	"/outputs/",
	"/logs/",
}

// AuthMiddleware guards the account-scoped endpoints behind the session
// cookie.
func AuthMiddleware(store *handlers.SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range openPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		if _, ok := store.UserID(r); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
