package ai

import (
	"image"

	"drowsyguard/internal/models"

	"gocv.io/x/gocv"
)

// scaleFactor returns the factor that bounds the longest edge of a w×h
// frame to maxSide. Frames already within the bound get 1.0; the
// normalizer never upscales.
func scaleFactor(width, height, maxSide int) float64 {
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= maxSide {
		return 1.0
	}
	return float64(maxSide) / float64(longest)
}

// normalizeScale downsizes oversized frames before classification,
// preserving aspect ratio. The caller owns the returned Mat only when
// scale != 1.0; otherwise the input Mat is returned unchanged.
func normalizeScale(mat gocv.Mat, maxSide int) (gocv.Mat, float64) {
	scale := scaleFactor(mat.Cols(), mat.Rows(), maxSide)
	if scale == 1.0 {
		return mat, 1.0
	}

	newWidth := int(float64(mat.Cols()) * scale)
	newHeight := int(float64(mat.Rows()) * scale)

	resized := gocv.NewMat()
	gocv.Resize(mat, &resized, image.Pt(newWidth, newHeight), 0, 0, gocv.InterpolationArea)
	return resized, scale
}

// rescaleBoxes projects detections from normalized-frame coordinates back
// to the original canvas by the inverse scale. Boxes are not clipped to the
// frame bounds; the projection is purely geometric.
func rescaleBoxes(detections []models.Detection, scale float64) []models.Detection {
	if scale == 1.0 {
		return detections
	}

	inv := 1.0 / scale
	for i := range detections {
		detections[i].X1 *= inv
		detections[i].Y1 *= inv
		detections[i].X2 *= inv
		detections[i].Y2 *= inv
	}
	return detections
}
