package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"drowsyguard/internal/logger"
	"drowsyguard/internal/models"
	"drowsyguard/internal/services"
	"drowsyguard/internal/services/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

type detectResponse struct {
	models.FrameResult
	AnnotatedURL string `json:"annotated_url,omitempty"`
}

// DetectHandler runs single-image detection on an uploaded file and stores
// an annotated copy. Unlike the stream path there is no smoothing window:
// the drowsy verdict reflects this frame alone.
func DetectHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}

		detections, err := manager.Detector().Detect(data)
		if err != nil {
			logger.Warning("Detection failed for %s: %v", header.Filename, err)
			http.Error(w, "Detection failed", http.StatusUnprocessableEntity)
			return
		}

		labels := make([]string, len(detections))
		for i, d := range detections {
			labels[i] = d.Label
		}

		resp := detectResponse{
			FrameResult: models.NewFrameResult(detections, manager.FrameVerdict(labels)),
		}

		if annotated, err := manager.Detector().Annotate(data, detections); err != nil {
			logger.Warning("Annotation failed for %s: %v", header.Filename, err)
		} else if name, err := manager.Artifacts().Save(header.Filename, annotated); err == nil {
			resp.AnnotatedURL = "/outputs/" + name
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// OutputFileHandler serves stored annotated images by name.
func OutputFileHandler(artifacts *storage.ArtifactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/outputs/"):]
		path, err := artifacts.Path(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}
