package config

import (
	"log/slog"
	"os"
)

type Config struct {
	// MongoDB configuration
	MongoURI     string
	DatabaseName string

	// Local identity store (pebble) location
	IdentityStorePath string

	// Server configuration
	Port        string
	CORSOrigins string
}

func LoadConfig() *Config {
	cfg := &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:      getEnv("MONGO_DB_NAME", "faculty_hub"),
		IdentityStorePath: getEnv("IDENTITY_STORE_PATH", "./identity.db"),
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),
	}

	// Validate required configuration
	if cfg.MongoURI == "" {
		slog.Error("MONGO_URI not set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
