// ABOUTME: Tests for configuration loading and validation.
// ABOUTME: Uses t.Setenv so the process environment is restored per test.
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL: got %q", cfg.OllamaURL)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("Model: got %q", cfg.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout: got %s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries: got %d", cfg.MaxRetries)
	}
	if cfg.DefaultUserID != 1 {
		t.Errorf("DefaultUserID: got %d", cfg.DefaultUserID)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone: got %q", cfg.Timezone)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPBOT_MODEL", "qwen2.5")
	t.Setenv("REPBOT_LLM_TIMEOUT", "30s")
	t.Setenv("TELEGRAM_ALLOWED_USERS", "12345, 67890")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "qwen2.5" {
		t.Errorf("Model: got %q", cfg.Model)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout: got %s", cfg.Timeout)
	}
	if len(cfg.AllowedUserIDs) != 2 || cfg.AllowedUserIDs[0] != 12345 || cfg.AllowedUserIDs[1] != 67890 {
		t.Errorf("AllowedUserIDs: got %v", cfg.AllowedUserIDs)
	}
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	t.Setenv("REPBOT_TIMEZONE", "Not/AZone")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestValidateRejectsRetriesOutOfRange(t *testing.T) {
	t.Setenv("REPBOT_LLM_MAX_RETRIES", "50")
	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range retries")
	}
}

func TestAllowed(t *testing.T) {
	cfg := &Config{AllowedUserIDs: []int64{42}}
	if !cfg.Allowed(42) {
		t.Error("42 should be allowed")
	}
	if cfg.Allowed(7) {
		t.Error("7 should not be allowed")
	}

	empty := &Config{}
	if empty.Allowed(42) {
		t.Error("empty allowlist should deny everyone")
	}
}
