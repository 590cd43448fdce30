package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, expected 8080", cfg.Port)
	}
	if cfg.SmoothWindow != 5 {
		t.Errorf("SmoothWindow = %d, expected 5", cfg.SmoothWindow)
	}
	if cfg.MaxFrameSide != 640 {
		t.Errorf("MaxFrameSide = %d, expected 640", cfg.MaxFrameSide)
	}
	if cfg.AlertCooldown != 2*time.Second {
		t.Errorf("AlertCooldown = %v, expected 2s", cfg.AlertCooldown)
	}
	if cfg.DetectionThreshold != 0.5 {
		t.Errorf("DetectionThreshold = %v, expected 0.5", cfg.DetectionThreshold)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALERT_COOLDOWN", "0.5")
	t.Setenv("ESP32_ADDR", "http://10.0.0.5")
	t.Setenv("SMOOTH_WINDOW", "7")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, expected 9090", cfg.Port)
	}
	if cfg.AlertCooldown != 500*time.Millisecond {
		t.Errorf("AlertCooldown = %v, expected 500ms", cfg.AlertCooldown)
	}
	if cfg.ActuatorAddr != "http://10.0.0.5" {
		t.Errorf("ActuatorAddr = %q", cfg.ActuatorAddr)
	}
	if cfg.SmoothWindow != 7 {
		t.Errorf("SmoothWindow = %d, expected 7", cfg.SmoothWindow)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ALERT_COOLDOWN", "fast")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("malformed PORT should fall back, got %d", cfg.Port)
	}
	if cfg.AlertCooldown != 2*time.Second {
		t.Errorf("malformed ALERT_COOLDOWN should fall back, got %v", cfg.AlertCooldown)
	}
}
