package services

import (
	"errors"
	"time"

	"drowsyguard/internal/config"
	"drowsyguard/internal/logger"
	"drowsyguard/internal/metrics"
	"drowsyguard/internal/models"
	"drowsyguard/internal/services/ai"
	"drowsyguard/internal/services/alert"
	"drowsyguard/internal/services/drowsy"
	"drowsyguard/internal/services/storage"
)

// Detector is the classifier surface the pipeline depends on.
type Detector interface {
	Detect(imageBytes []byte) ([]models.Detection, error)
	Annotate(imageBytes []byte, detections []models.Detection) ([]byte, error)
	Loaded() bool
}

// Manager wires the detector, drowsiness classifier, alert dispatcher and
// artifact store together and hands out per-session pipelines.
type Manager struct {
	detector   Detector
	classifier *drowsy.Classifier
	alerts     *alert.Dispatcher
	artifacts  *storage.ArtifactStore
	metrics    *metrics.Metrics
	logger     *logger.Logger

	windowSize int
	alertLevel string
}

// NewManager assembles the service layer from configuration.
func NewManager(cfg *config.Config, detector Detector, alerts *alert.Dispatcher, artifacts *storage.ArtifactStore, m *metrics.Metrics, logger *logger.Logger) *Manager {
	return &Manager{
		detector:   detector,
		classifier: drowsy.NewClassifier(drowsy.DefaultKeywords),
		alerts:     alerts,
		artifacts:  artifacts,
		metrics:    m,
		logger:     logger,
		windowSize: cfg.SmoothWindow,
		alertLevel: cfg.AlertLevel,
	}
}

// Detector exposes the underlying classifier for single-image endpoints.
func (mgr *Manager) Detector() Detector {
	return mgr.detector
}

// Artifacts exposes the annotated-output store.
func (mgr *Manager) Artifacts() *storage.ArtifactStore {
	return mgr.artifacts
}

// Alerts exposes the actuator dispatcher.
func (mgr *Manager) Alerts() *alert.Dispatcher {
	return mgr.alerts
}

// Metrics exposes the pipeline counters.
func (mgr *Manager) Metrics() *metrics.Metrics {
	return mgr.metrics
}

// FrameVerdict reports whether a single frame's labels indicate drowsiness,
// without any temporal smoothing.
func (mgr *Manager) FrameVerdict(labels []string) bool {
	return mgr.classifier.Indicates(labels)
}

// Pipeline carries the per-session smoothing state on top of the shared
// manager. One pipeline per stream session; results from different sessions
// never mix windows.
type Pipeline struct {
	mgr      *Manager
	smoother *drowsy.Smoother
}

// NewPipeline creates a pipeline with a fresh smoothing window.
func (mgr *Manager) NewPipeline() *Pipeline {
	return &Pipeline{
		mgr:      mgr,
		smoother: drowsy.NewSmoother(mgr.windowSize),
	}
}

// ProcessFrame runs one frame through decode, inference, smoothing and alert
// dispatch. Failures are reported in the result message, never as a session
// teardown.
func (p *Pipeline) ProcessFrame(frame []byte) models.FrameResult {
	mgr := p.mgr

	start := time.Now()
	detections, err := mgr.detector.Detect(frame)
	mgr.metrics.ObserveInference(time.Since(start))

	if err != nil {
		if errors.Is(err, ai.ErrDecode) {
			// Undecodable bytes say nothing about the driver; the
			// smoothing window is left untouched.
			mgr.metrics.DecodeErrors.Add(1)
			return models.ErrorResult("decode_failed")
		}

		mgr.metrics.InferenceErrors.Add(1)
		mgr.logger.Warning("Inference failed: %v", err)

		result := models.ErrorResult("inference_failed")
		result.Drowsy = p.observe(nil)
		return result
	}

	mgr.metrics.FramesProcessed.Add(1)

	result := models.NewFrameResult(detections, p.observe(detections))
	return result
}

// observe feeds one frame's detections into the smoothing window and fires
// the alert dispatcher when the smoothed verdict is drowsy.
func (p *Pipeline) observe(detections []models.Detection) bool {
	mgr := p.mgr

	labels := make([]string, len(detections))
	for i, d := range detections {
		labels[i] = d.Label
	}

	smoothed := p.smoother.Push(mgr.classifier.Indicates(labels))
	if smoothed {
		if mgr.alerts.Trigger(mgr.alertLevel) {
			mgr.metrics.AlertsSent.Add(1)
		} else {
			mgr.metrics.AlertsSuppressed.Add(1)
		}
	}
	return smoothed
}
