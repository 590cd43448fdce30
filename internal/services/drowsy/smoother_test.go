package drowsy

import "testing"

func TestSmoother_ThresholdWithinWindow(t *testing.T) {
	// With a 5-frame window the verdict flips at ceil(5*0.6) = 3 drowsy
	// frames.
	tests := []struct {
		name     string
		verdicts []bool
		expected bool
	}{
		{"all alert", []bool{false, false, false, false, false}, false},
		{"two drowsy", []bool{true, true, false, false, false}, false},
		{"three drowsy", []bool{true, true, true, false, false}, true},
		{"three drowsy scattered", []bool{true, false, true, false, true}, true},
		{"all drowsy", []bool{true, true, true, true, true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(5)
			var got bool
			for _, v := range tt.verdicts {
				got = s.Push(v)
			}
			if got != tt.expected {
				t.Errorf("final verdict = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSmoother_SingleFrameCannotFlip(t *testing.T) {
	s := NewSmoother(5)

	for i := 0; i < 10; i++ {
		s.Push(false)
	}
	if s.Push(true) {
		t.Error("one drowsy frame in an alert window must not flip the verdict")
	}
}

func TestSmoother_EvictsOldest(t *testing.T) {
	s := NewSmoother(5)

	// Fill with drowsy, then push alert frames until the drowsy ones age
	// out.
	for i := 0; i < 5; i++ {
		if got := s.Push(true); i >= 2 && !got {
			t.Fatalf("verdict should be drowsy after %d drowsy frames", i+1)
		}
	}

	// Window counts: 4, 3, 2 drowsy.
	if !s.Push(false) {
		t.Error("4 of 5 drowsy should stay drowsy")
	}
	if !s.Push(false) {
		t.Error("3 of 5 drowsy should stay drowsy")
	}
	if s.Push(false) {
		t.Error("2 of 5 drowsy should flip back to alert")
	}
}

func TestSmoother_PartialWindow(t *testing.T) {
	s := NewSmoother(5)

	// The threshold is fixed at 3 even before the window fills.
	if s.Push(true) {
		t.Error("1 of 1 should not reach the 3-frame threshold")
	}
	if s.Push(true) {
		t.Error("2 of 2 should not reach the 3-frame threshold")
	}
	if !s.Push(true) {
		t.Error("3 of 3 should reach the threshold")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}
}

func TestSmoother_CapacityOne(t *testing.T) {
	s := NewSmoother(1)

	if !s.Push(true) {
		t.Error("capacity 1 should pass a drowsy verdict straight through")
	}
	if s.Push(false) {
		t.Error("capacity 1 should pass an alert verdict straight through")
	}
}

func TestSmoother_ClampsInvalidCapacity(t *testing.T) {
	s := NewSmoother(0)

	if !s.Push(true) {
		t.Error("capacity below 1 should degrade to pass-through")
	}
}
