package models

// Detection is a single classifier output. Box coordinates are in
// original-frame pixels after rescaling; they are projected geometrically
// and may fall outside the frame bounds.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
}

// Box returns the bounding box in the [x1,y1,x2,y2] wire order.
func (d Detection) Box() [4]float64 {
	return [4]float64{d.X1, d.Y1, d.X2, d.Y2}
}
