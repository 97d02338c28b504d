package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var configEnvVars = []string{
	"API_PORT", "DB_PATH", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT",
	"AI_BASE_URL", "AI_API_KEY", "AI_MODEL", "AI_TIMEOUT_SECONDS",
	"DAILY_QUOTA", "SEARCH_LIMIT",
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	for _, key := range configEnvVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func()
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults with required secret",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "5000" &&
					cfg.DailyQuota == 20 &&
					cfg.SearchLimit == 50 &&
					cfg.AITimeout == 30*time.Second &&
					cfg.LogLevel == slog.LevelInfo
			},
		},
		{
			name:     "missing JWT_SECRET",
			setupEnv: func() {},
			wantErr:  true,
		},
		{
			name: "explicit values override defaults",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
				setEnv("API_PORT", "9000")
				setEnv("DAILY_QUOTA", "5")
				setEnv("SEARCH_LIMIT", "10")
				setEnv("AI_TIMEOUT_SECONDS", "10")
				setEnv("LOG_LEVEL", "debug")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.DailyQuota == 5 &&
					cfg.SearchLimit == 10 &&
					cfg.AITimeout == 10*time.Second &&
					cfg.LogLevel == slog.LevelDebug
			},
		},
		{
			name: "zero quota rejected",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
				setEnv("DAILY_QUOTA", "0")
			},
			wantErr: true,
		},
		{
			name: "negative search limit rejected",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
				setEnv("SEARCH_LIMIT", "-1")
			},
			wantErr: true,
		},
		{
			name: "non-numeric timeout rejected",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
				setEnv("AI_TIMEOUT_SECONDS", "soon")
			},
			wantErr: true,
		},
		{
			name: "unknown log level rejected",
			setupEnv: func() {
				setEnv("JWT_SECRET", "secret")
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range configEnvVars {
				unsetEnv(key)
			}
			tt.setupEnv()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() = %+v, failed config check", cfg)
			}
		})
	}
}
