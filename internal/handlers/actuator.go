package handlers

import (
	"encoding/json"
	"net/http"

	"drowsyguard/internal/services"
	"drowsyguard/internal/services/alert"
)

// ActuatorTestHandler fires a manual actuator notification, bypassing the
// cooldown. Used to verify the ESP32 wiring from the settings page.
func ActuatorTestHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		level := r.URL.Query().Get("level")
		if level != alert.LevelWarn && level != alert.LevelCrit {
			level = alert.LevelWarn
		}

		go manager.Alerts().Notify(level)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "sent", "level": level})
	}
}
