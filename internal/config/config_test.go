package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"MEDLEDGER_API_URL": "",
	})
	if err == nil {
		t.Fatal("expected error when MEDLEDGER_API_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"MEDLEDGER_API_URL":      "https://billing.hospital.test/api",
		"MEDLEDGER_TOKEN_FILE":   "/tmp/medledger-test-token",
		"MEDLEDGER_HTTP_TIMEOUT": "",
		"OBS_LOG_LEVEL":          "",
		"OBS_METRICS_ADDR":       "",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("default timeout = %s, want 30s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("default log level = %q, want warn", cfg.LogLevel)
	}
	if cfg.TokenFile != "/tmp/medledger-test-token" {
		t.Fatalf("token file = %q", cfg.TokenFile)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Fatalf("default metrics addr = %q, want 127.0.0.1:9464", cfg.MetricsAddr)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"MEDLEDGER_API_URL":      "https://billing.hospital.test/api",
		"MEDLEDGER_TOKEN_FILE":   "/tmp/medledger-test-token",
		"MEDLEDGER_HTTP_TIMEOUT": "5s",
		"OBS_ENABLE_PROMETHEUS":  "yes",
		"OBS_METRICS_ADDR":       "127.0.0.1:9091",
		"OBS_LOG_FORMAT":         "json",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("timeout = %s, want 5s", cfg.HTTPTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("expected metrics enabled")
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("log format = %q, want json", cfg.LogFormat)
	}
	if cfg.MetricsAddr != "127.0.0.1:9091" {
		t.Fatalf("metrics addr = %q, want 127.0.0.1:9091", cfg.MetricsAddr)
	}
}
