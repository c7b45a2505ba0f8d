package config

import (
	"os"
	"strings"

	"meetnote/pkg/logger"
)

// Config carries the environment settings for both apps: the booking
// backend and the notes backend are separate services with their own
// base URLs.
type Config struct {
	Port string

	BookingAPIURL string
	NotesAPIURL   string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		BookingAPIURL: getEnvOrDefault("BOOKING_API_URL", "http://localhost:3030"),
		NotesAPIURL:   getEnvOrDefault("NOTES_API_URL", "http://localhost:3030"),
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	if logger.Sugar != nil {
		logger.Sugar.Infof("Environment variable %s is not set, using default value", key)
	}
	return defaultValue
}
