package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds CLI configuration loaded from the environment.
type Config struct {
	APIBaseURL     string
	TokenFile      string
	HTTPTimeout    time.Duration
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
	MetricsAddr    string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		APIBaseURL:     strings.TrimSpace(k.String("MEDLEDGER_API_URL")),
		TokenFile:      strings.TrimSpace(k.String("MEDLEDGER_TOKEN_FILE")),
		HTTPTimeout:    parseDuration(k.String("MEDLEDGER_HTTP_TIMEOUT"), "30s"),
		LogLevel:       valueOrDefault(k.String("OBS_LOG_LEVEL"), "warn"),
		LogFormat:      valueOrDefault(k.String("OBS_LOG_FORMAT"), "console"),
		MetricsEnabled: parseBool(k.String("OBS_ENABLE_PROMETHEUS")),
		MetricsAddr:    valueOrDefault(k.String("OBS_METRICS_ADDR"), "127.0.0.1:9464"),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("MEDLEDGER_API_URL is required")
	}
	if cfg.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve token file location: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "medledger", "token")
	}

	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LoadForTests allows tests to override environment variables without
// touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
