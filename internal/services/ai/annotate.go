package ai

import (
	"fmt"
	"image"
	"image/color"

	"drowsyguard/internal/models"

	"gocv.io/x/gocv"
)

// Annotate draws detection boxes and labels onto a copy of the frame and
// returns it re-encoded as JPEG.
func (s *DetectorService) Annotate(imageBytes []byte, detections []models.Detection) ([]byte, error) {
	red := color.RGBA{R: 255, G: 0, B: 0, A: 0}

	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer mat.Close()

	for _, detection := range detections {
		rect := image.Rect(int(detection.X1), int(detection.Y1), int(detection.X2), int(detection.Y2))
		if err := gocv.Rectangle(&mat, rect, red, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %v", err)
		}

		label := fmt.Sprintf("%s (%.2f)", detection.Label, detection.Confidence)
		pt := image.Pt(int(detection.X1), int(detection.Y1)-5)
		if err := gocv.PutText(&mat, label, pt, gocv.FontHersheySimplex, 0.5, red, 1); err != nil {
			return nil, fmt.Errorf("failed to draw text: %v", err)
		}
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		s.logger.Error("Failed to encode annotated image: %v", err)
		return nil, err
	}
	defer buf.Close()

	annotated := make([]byte, len(buf.GetBytes()))
	copy(annotated, buf.GetBytes())

	return annotated, nil
}
