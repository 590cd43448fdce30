package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port               int
	ModelPath          string
	ConfigPath         string
	DatabasePath       string
	OutputDirectory    string
	LogDirectory       string
	ActuatorAddr       string // base URL of the ESP32 alert device
	AlertLevel         string // "warn" or "crit"
	AlertCooldown      time.Duration
	SmoothWindow       int     // frames in the drowsiness smoothing window
	MaxFrameSide       int     // longest frame edge fed to the classifier
	DetectionThreshold float64 // minimum confidence for a detection
}

func Load() *Config {
	return &Config{
		Port:               getEnvAsInt("PORT", 8080),
		ModelPath:          getEnv("MODEL_PATH", filepath.Join(".", "models", "frozen_inference_graph.pb")),
		ConfigPath:         getEnv("CONFIG_PATH", filepath.Join(".", "models", "drowsiness_ssd.pbtxt")),
		DatabasePath:       getEnv("DB_PATH", filepath.Join(".", "drowsiness.db")),
		OutputDirectory:    getEnv("OUTPUT_DIR", filepath.Join(".", "outputs")),
		LogDirectory:       getEnv("LOG_DIR", filepath.Join(".", "logs")),
		ActuatorAddr:       getEnv("ESP32_ADDR", "http://192.168.1.20"),
		AlertLevel:         getEnv("ALERT_LEVEL", "crit"),
		AlertCooldown:      getEnvAsSeconds("ALERT_COOLDOWN", 2.0),
		SmoothWindow:       getEnvAsInt("SMOOTH_WINDOW", 5),
		MaxFrameSide:       getEnvAsInt("MAX_FRAME_SIDE", 640),
		DetectionThreshold: getEnvAsFloat("DETECTION_THRESHOLD", 0.5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsSeconds reads a float number of seconds into a Duration.
func getEnvAsSeconds(key string, defaultValue float64) time.Duration {
	return time.Duration(getEnvAsFloat(key, defaultValue) * float64(time.Second))
}
