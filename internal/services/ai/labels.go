package ai

import "fmt"

// className maps the network's class indices to the drowsiness vocabulary.
// The mapping is fixed by the trained model export.
func className(classID int) string {
	labels := map[int]string{
		0: "alert",
		1: "drowsy",
		2: "eyes_closed",
		3: "yawning",
	}

	if label, exists := labels[classID]; exists {
		return label
	}
	return fmt.Sprintf("class_%d", classID)
}
