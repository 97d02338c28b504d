package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	JWTSecret string
	LogLevel  slog.Level
	LogFormat string
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration
	// DailyQuota is the per-user ceiling on enrichment-consuming saves per
	// UTC calendar day.
	DailyQuota int
	// SearchLimit bounds the recent-items window fetched for search and chat.
	SearchLimit int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "5000"),
		DBPath:    getEnv("DB_PATH", "./data/recallr.db"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		AIBaseURL: getEnv("AI_BASE_URL", "http://localhost:8080"),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "gemini-flash-latest"),
	}

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Enrichment calls must never hang a save indefinitely, so the timeout
	// is always bounded.
	timeoutSeconds, err := parsePositiveInt("AI_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.AITimeout = time.Duration(timeoutSeconds) * time.Second

	// The quota ceiling and result window are centralized here; nothing else
	// hard-codes them.
	cfg.DailyQuota, err = parsePositiveInt("DAILY_QUOTA", 20)
	if err != nil {
		return nil, err
	}
	cfg.SearchLimit, err = parsePositiveInt("SEARCH_LIMIT", 50)
	if err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// parsePositiveInt reads an integer environment variable with a default,
// rejecting zero and negative values.
func parsePositiveInt(key string, def int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

// getEnv returns the value of an environment variable, or a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
