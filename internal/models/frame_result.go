package models

// FrameResult is the per-frame message sent back to a streaming client.
// Exactly one result is emitted per accepted frame; dropped frames produce
// no message at all.
type FrameResult struct {
	Labels []string     `json:"labels"`
	Boxes  [][4]float64 `json:"boxes"`
	Confs  []float64    `json:"confs"`
	Drowsy bool         `json:"drowsy"`
	Error  string       `json:"error,omitempty"`
}

// NewFrameResult builds a result from a detection set and the smoothed
// drowsiness verdict. Slices are always non-nil so clients see empty
// arrays, not null.
func NewFrameResult(detections []Detection, drowsy bool) FrameResult {
	result := FrameResult{
		Labels: make([]string, 0, len(detections)),
		Boxes:  make([][4]float64, 0, len(detections)),
		Confs:  make([]float64, 0, len(detections)),
		Drowsy: drowsy,
	}
	for _, det := range detections {
		result.Labels = append(result.Labels, det.Label)
		result.Boxes = append(result.Boxes, det.Box())
		result.Confs = append(result.Confs, det.Confidence)
	}
	return result
}

// ErrorResult builds a failure message for a frame that could not be
// processed. The session carrying it stays open.
func ErrorResult(msg string) FrameResult {
	return FrameResult{
		Labels: []string{},
		Boxes:  [][4]float64{},
		Confs:  []float64{},
		Error:  msg,
	}
}
