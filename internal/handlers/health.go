package handlers

import (
	"encoding/json"
	"net/http"

	"gocv.io/x/gocv"

	"drowsyguard/internal/services"
)

// HealthHandler reports service readiness. The service stays up without a
// model so the endpoint distinguishes "running" from "able to classify".
func HealthHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":         "ok",
			"model_loaded":   manager.Detector().Loaded(),
			"gocv_version":   gocv.Version(),
			"opencv_version": gocv.OpenCVVersion(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
