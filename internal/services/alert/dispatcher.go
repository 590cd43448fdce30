package alert

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"drowsyguard/internal/logger"
)

// Alert levels understood by the actuator firmware.
const (
	LevelWarn = "warn"
	LevelCrit = "crit"
)

const actuatorTimeout = 1500 * time.Millisecond

// Dispatcher debounces drowsiness alerts to the ESP32 actuator. One
// dispatcher is shared by every stream session since the actuator is a
// single physical device; the cooldown timestamp is guarded by its own
// mutex, independent of the classifier lock.
type Dispatcher struct {
	actuatorAddr string
	cooldown     time.Duration
	client       *http.Client
	logger       *logger.Logger

	mu        sync.Mutex
	lastAlert time.Time
}

// NewDispatcher creates a dispatcher for the actuator at actuatorAddr
// (base URL, no trailing slash required).
func NewDispatcher(actuatorAddr string, cooldown time.Duration, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		actuatorAddr: strings.TrimRight(actuatorAddr, "/"),
		cooldown:     cooldown,
		client:       &http.Client{Timeout: actuatorTimeout},
		logger:       logger,
	}
}

// Trigger sends a best-effort notification unless one was dispatched within
// the cooldown interval. Triggers inside the cooldown are dropped, not
// deferred. Returns true when a notification was actually dispatched.
func (d *Dispatcher) Trigger(level string) bool {
	d.mu.Lock()
	now := time.Now()
	if now.Sub(d.lastAlert) < d.cooldown {
		d.mu.Unlock()
		return false
	}
	d.lastAlert = now
	d.mu.Unlock()

	// Fire-and-forget: the worker that triggered the alert must not wait
	// on actuator latency.
	go d.Notify(level)
	return true
}

// Notify performs one actuator request. Failure to reach the device is
// logged and swallowed; there are no retries.
func (d *Dispatcher) Notify(level string) {
	resp, err := d.client.Get(fmt.Sprintf("%s/alert?level=%s", d.actuatorAddr, url.QueryEscape(level)))
	if err != nil {
		d.logger.Warning("Actuator unreachable: %v", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	d.logger.Info("Actuator alert %s -> %d %s", level, resp.StatusCode, strings.TrimSpace(string(body)))
}

// LastAlert returns the timestamp of the most recent dispatched alert.
func (d *Dispatcher) LastAlert() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastAlert
}
