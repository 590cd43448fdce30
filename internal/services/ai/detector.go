package ai

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"drowsyguard/internal/config"
	"drowsyguard/internal/logger"
	"drowsyguard/internal/models"

	"gocv.io/x/gocv"
)

// Per-message failure kinds. Both are recoverable: the owning session
// reports them and keeps running.
var (
	ErrDecode    = errors.New("decode_failed")
	ErrInference = errors.New("inference_failed")
)

const inputSize = 300 // network input edge, fixed by the SSD export

// DetectorService wraps the drowsiness detection network. The underlying
// gocv.Net keeps internal state between calls and is not safe for concurrent
// use, so every inference runs under netMu: at most one Forward executes at
// any instant, across all stream sessions.
type DetectorService struct {
	net    gocv.Net
	netMu  sync.Mutex
	loaded bool

	modelPath     string
	configPath    string
	confThreshold float64
	maxSide       int
	logger        *logger.Logger
}

// NewDetectorService loads the detection network once at startup. A missing
// model leaves the service in a degraded state where Detect reports
// ErrInference; the process itself stays up.
func NewDetectorService(cfg *config.Config, logger *logger.Logger) *DetectorService {
	service := &DetectorService{
		modelPath:     cfg.ModelPath,
		configPath:    cfg.ConfigPath,
		confThreshold: cfg.DetectionThreshold,
		maxSide:       cfg.MaxFrameSide,
		logger:        logger,
	}

	if err := service.initializeNet(); err != nil {
		service.logger.Warning("Could not initialize detection network: %v", err)
		return service
	}

	return service
}

// initializeNet loads the network from the model and config files.
func (s *DetectorService) initializeNet() error {
	if _, err := os.Stat(s.modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", s.modelPath)
	}

	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", s.configPath)
	}

	net := gocv.ReadNet(s.modelPath, s.configPath)

	if net.Empty() {
		return fmt.Errorf("failed to load network")
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)

	if errBackend != nil || errTarget != nil {
		return fmt.Errorf("failed to set preferable backend or target")
	}

	s.net = net
	s.loaded = true
	s.logger.Info("Detection network initialized from %s", s.modelPath)
	return nil
}

// Loaded reports whether the network is ready for inference.
func (s *DetectorService) Loaded() bool {
	s.netMu.Lock()
	defer s.netMu.Unlock()
	return s.loaded
}

// Close releases the network.
func (s *DetectorService) Close() {
	s.netMu.Lock()
	defer s.netMu.Unlock()
	if s.loaded {
		s.net.Close()
		s.loaded = false
	}
}

// Detect runs one frame through the full classification path: decode,
// bound the longest edge, infer, and project the boxes back to the original
// canvas. Returns ErrDecode for malformed input and ErrInference when the
// network call fails; both are per-frame errors.
func (s *DetectorService) Detect(imageBytes []byte) ([]models.Detection, error) {
	if len(imageBytes) == 0 {
		return nil, ErrDecode
	}

	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, ErrDecode
	}

	resized, scale := normalizeScale(mat, s.maxSide)
	if scale != 1.0 {
		defer resized.Close()
	}

	detections, err := s.forward(resized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	return rescaleBoxes(detections, scale), nil
}

// forward performs exactly one inference call under the network lock.
// Returned boxes are in the coordinates of the (possibly resized) input.
func (s *DetectorService) forward(mat gocv.Mat) ([]models.Detection, error) {
	s.netMu.Lock()
	defer s.netMu.Unlock()

	if !s.loaded || s.net.Empty() {
		return nil, fmt.Errorf("detection network not initialized")
	}

	blob := gocv.BlobFromImage(mat, 1.0/127.5, image.Pt(inputSize, inputSize),
		gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")

	output := s.net.Forward("")
	defer output.Close()

	reshaped := output.Reshape(1, output.Total()/7)
	defer reshaped.Close()

	cols := float64(mat.Cols())
	rows := float64(mat.Rows())

	var detections []models.Detection
	for i := 0; i < reshaped.Rows(); i++ {
		confidence := float64(reshaped.GetFloatAt(i, 2))
		if confidence < s.confThreshold {
			continue
		}
		classID := int(reshaped.GetFloatAt(i, 1))

		detections = append(detections, models.Detection{
			Label:      className(classID),
			Confidence: confidence,
			X1:         float64(reshaped.GetFloatAt(i, 3)) * cols,
			Y1:         float64(reshaped.GetFloatAt(i, 4)) * rows,
			X2:         float64(reshaped.GetFloatAt(i, 5)) * cols,
			Y2:         float64(reshaped.GetFloatAt(i, 6)) * rows,
		})
	}

	return detections, nil
}
