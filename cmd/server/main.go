package main

import (
	"log"

	"github.com/joho/godotenv"

	"drowsyguard/internal/app"
)

func main() {
	// Missing .env is fine; configuration falls back to defaults.
	_ = godotenv.Load()

	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
