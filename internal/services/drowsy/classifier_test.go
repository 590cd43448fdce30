package drowsy

import "testing"

func TestClassifier_Indicates(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name     string
		labels   []string
		expected bool
	}{
		{"empty frame", []string{}, false},
		{"alert only", []string{"alert"}, false},
		{"drowsy label", []string{"drowsy"}, true},
		{"eyes closed", []string{"eyes_closed"}, true},
		{"yawning", []string{"yawning"}, true},
		{"mixed labels", []string{"alert", "yawning"}, true},
		{"case insensitive", []string{"DROWSY"}, true},
		{"substring match", []string{"eyes_closed_left"}, true},
		{"unrelated labels", []string{"person", "car"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Indicates(tt.labels); got != tt.expected {
				t.Errorf("Indicates(%v) = %v, expected %v", tt.labels, got, tt.expected)
			}
		})
	}
}

func TestClassifier_CustomKeywords(t *testing.T) {
	c := NewClassifier([]string{"Nodding"})

	if !c.Indicates([]string{"nodding_off"}) {
		t.Error("custom keyword should match case-insensitively")
	}
	if c.Indicates([]string{"drowsy"}) {
		t.Error("default keywords should not apply with a custom set")
	}
}
