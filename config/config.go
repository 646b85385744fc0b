package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. Loaded
// once in main and passed into constructors explicitly.
type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	RequireAuth       bool
	RecurringInterval time.Duration
}

func Load() Config {
	godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "5000"),
		MongoURI:          os.Getenv("MONGO_URI"),
		DBName:            getEnv("DB_NAME", "task_db"),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretkey"),
		RequireAuth:       os.Getenv("REQUIRE_AUTH") == "true",
		RecurringInterval: time.Hour,
	}

	if raw := os.Getenv("RECURRING_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("invalid RECURRING_INTERVAL, using default", "value", raw, "default", cfg.RecurringInterval)
		} else {
			cfg.RecurringInterval = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
