package app

import (
	"os"
	"path/filepath"
)

type Config struct {
	ServerURL   string // Base URL of the fileshare server
	SessionFile string // Path of the stored session credentials
	Env         string // Environment (dev, staging, prod) (default: dev)
	LogLevel    string // Log level (debug, info, warn, error) (default: info)
	LogFormat   string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		ServerURL:   getEnvOrDefault("FILESHARE_SERVER", "https://localhost:8080"),
		SessionFile: getEnvOrDefault("FILESHARE_SESSION_FILE", defaultSessionFile()),
		Env:         getEnvOrDefault("ENV", "dev"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// defaultSessionFile is ~/.fileshare/session.json, falling back to the working
// directory when the home directory cannot be determined.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".fileshare", "session.json")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
