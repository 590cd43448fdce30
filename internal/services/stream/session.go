package stream

import (
	"sync"
	"sync/atomic"

	"drowsyguard/internal/models"
)

// Processor turns one encoded frame into a result message.
type Processor interface {
	ProcessFrame(frame []byte) models.FrameResult
}

// Session is the per-connection streaming state machine. Frame intake is
// decoupled from classification: at most one worker is in flight per
// session, and frames arriving while it runs are discarded rather than
// queued. The result stream can therefore lag by at most one inference,
// never by a growing queue.
type Session struct {
	proc    Processor
	results chan models.FrameResult

	busy atomic.Bool
	done chan struct{}
	once sync.Once
}

// NewSession creates a session around the given processor.
func NewSession(proc Processor) *Session {
	return &Session{
		proc:    proc,
		results: make(chan models.FrameResult, 1),
		done:    make(chan struct{}),
	}
}

// Submit offers a frame for classification. It returns false without doing
// any work when a previous frame is still being processed or the session is
// closed; the frame is simply dropped. Accepted frames produce exactly one
// result on Results, in acceptance order.
func (s *Session) Submit(frame []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	if !s.busy.CompareAndSwap(false, true) {
		return false
	}

	go func() {
		result := s.proc.ProcessFrame(frame)
		select {
		case <-s.done:
			// Result of an in-flight frame is discarded on close.
		default:
			select {
			case s.results <- result:
			case <-s.done:
			}
		}
		// busy clears only after delivery so results cannot reorder.
		s.busy.Store(false)
	}()

	return true
}

// Results delivers one message per accepted frame.
func (s *Session) Results() <-chan models.FrameResult {
	return s.results
}

// Done is closed when the session has been torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close tears the session down. An in-flight worker finishes its inference
// but its result is discarded; other sessions are unaffected. Close is
// idempotent.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}
