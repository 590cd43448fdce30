package stream

import (
	"sync/atomic"
	"testing"
	"time"

	"drowsyguard/internal/models"
)

// blockingProcessor holds each frame until released, so tests control how
// long inference appears to take.
type blockingProcessor struct {
	started chan []byte
	release chan struct{}
	calls   atomic.Int64
}

func newBlockingProcessor() *blockingProcessor {
	return &blockingProcessor{
		started: make(chan []byte, 16),
		release: make(chan struct{}),
	}
}

func (p *blockingProcessor) ProcessFrame(frame []byte) models.FrameResult {
	p.calls.Add(1)
	p.started <- frame
	<-p.release
	result := models.NewFrameResult(nil, false)
	result.Labels = append(result.Labels, string(frame))
	return result
}

// instantProcessor echoes the frame bytes back as a label.
type instantProcessor struct{}

func (instantProcessor) ProcessFrame(frame []byte) models.FrameResult {
	result := models.NewFrameResult(nil, false)
	result.Labels = append(result.Labels, string(frame))
	return result
}

func TestSession_AcceptedFrameProducesResult(t *testing.T) {
	s := NewSession(instantProcessor{})
	defer s.Close()

	if !s.Submit([]byte("frame-1")) {
		t.Fatal("idle session should accept a frame")
	}

	select {
	case result := <-s.Results():
		if len(result.Labels) != 1 || result.Labels[0] != "frame-1" {
			t.Errorf("unexpected result: %+v", result)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result for accepted frame")
	}
}

func TestSession_DropsWhileBusy(t *testing.T) {
	proc := newBlockingProcessor()
	s := NewSession(proc)
	defer s.Close()

	if !s.Submit([]byte("a")) {
		t.Fatal("first frame should be accepted")
	}
	<-proc.started

	// Worker is mid-inference; everything else is dropped.
	for i := 0; i < 5; i++ {
		if s.Submit([]byte("dropped")) {
			t.Fatal("frame should be dropped while worker is busy")
		}
	}

	close(proc.release)

	select {
	case result := <-s.Results():
		if result.Labels[0] != "a" {
			t.Errorf("result for %q, expected %q", result.Labels[0], "a")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result for accepted frame")
	}

	if proc.calls.Load() != 1 {
		t.Errorf("processor ran %d times, expected 1", proc.calls.Load())
	}
}

func TestSession_OneResultPerAcceptedFrame(t *testing.T) {
	s := NewSession(instantProcessor{})
	defer s.Close()

	accepted := 0
	received := 0
	for i := 0; i < 50; i++ {
		if s.Submit([]byte{byte(i)}) {
			accepted++
			select {
			case <-s.Results():
				received++
			case <-time.After(2 * time.Second):
				t.Fatal("missing result")
			}
		}
	}

	if accepted == 0 {
		t.Fatal("no frames accepted")
	}
	if received != accepted {
		t.Errorf("received %d results for %d accepted frames", received, accepted)
	}
}

func TestSession_ResultsInAcceptanceOrder(t *testing.T) {
	s := NewSession(instantProcessor{})
	defer s.Close()

	frames := []string{"one", "two", "three", "four"}
	for _, f := range frames {
		if !s.Submit([]byte(f)) {
			t.Fatalf("frame %q rejected on an idle session", f)
		}
		select {
		case result := <-s.Results():
			if result.Labels[0] != f {
				t.Fatalf("result %q out of order, expected %q", result.Labels[0], f)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("missing result")
		}
	}
}

func TestSession_CloseDiscardsInFlightResult(t *testing.T) {
	proc := newBlockingProcessor()
	s := NewSession(proc)

	if !s.Submit([]byte("late")) {
		t.Fatal("frame should be accepted")
	}
	<-proc.started

	s.Close()
	close(proc.release)

	select {
	case result := <-s.Results():
		t.Errorf("closed session delivered a result: %+v", result)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSession_ClosedSessionRejectsFrames(t *testing.T) {
	s := NewSession(instantProcessor{})
	s.Close()
	s.Close() // idempotent

	if s.Submit([]byte("x")) {
		t.Error("closed session should reject frames")
	}
}
