// Package config reads service configuration from the environment,
// optionally loading a local .env file first.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all settings the server needs at startup. Database
// connection settings live with the postgres storage package.
type Config struct {
	Port          string
	StorageDriver string // memory | sqlite | postgres
	SQLitePath    string
	LogLevel      string
	WebDir        string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "eventbooking.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WebDir:        getEnv("WEB_DIR", "./web"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
