package alert

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"drowsyguard/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(t.TempDir())
}

func waitForHits(t *testing.T, hits *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hits.Load() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("actuator hits = %d, expected %d", hits.Load(), want)
}

func TestDispatcher_NotifySendsLevel(t *testing.T) {
	var hits atomic.Int64
	var gotLevel atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotLevel.Store(r.URL.Query().Get("level"))
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	d := NewDispatcher(server.URL, time.Hour, testLogger(t))
	d.Notify(LevelCrit)

	if hits.Load() != 1 {
		t.Fatalf("actuator hits = %d, expected 1", hits.Load())
	}
	if got := gotLevel.Load(); got != LevelCrit {
		t.Errorf("level = %v, expected %q", got, LevelCrit)
	}
}

func TestDispatcher_CooldownSuppresses(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	d := NewDispatcher(server.URL, 100*time.Millisecond, testLogger(t))

	if !d.Trigger(LevelWarn) {
		t.Fatal("first trigger should dispatch")
	}
	if d.Trigger(LevelWarn) {
		t.Fatal("trigger inside cooldown should be suppressed")
	}
	waitForHits(t, &hits, 1)

	time.Sleep(120 * time.Millisecond)

	if !d.Trigger(LevelWarn) {
		t.Fatal("trigger after cooldown should dispatch")
	}
	waitForHits(t, &hits, 2)
}

func TestDispatcher_SuppressedTriggerIsDropped(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	d := NewDispatcher(server.URL, time.Hour, testLogger(t))

	d.Trigger(LevelCrit)
	for i := 0; i < 10; i++ {
		d.Trigger(LevelCrit)
	}

	// Suppressed triggers are dropped, not deferred: exactly one request.
	waitForHits(t, &hits, 1)
	time.Sleep(50 * time.Millisecond)
	if hits.Load() != 1 {
		t.Errorf("actuator hits = %d, expected 1", hits.Load())
	}
}

func TestDispatcher_UnreachableActuatorDoesNotBlock(t *testing.T) {
	d := NewDispatcher("http://127.0.0.1:1", 0, testLogger(t))

	done := make(chan struct{})
	go func() {
		d.Notify(LevelWarn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Notify should fail fast against an unreachable actuator")
	}
}

func TestDispatcher_TriggerReturnsBeforeRequest(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	d := NewDispatcher(server.URL, time.Hour, testLogger(t))

	start := time.Now()
	d.Trigger(LevelCrit)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Trigger blocked for %v on a slow actuator", elapsed)
	}
}
