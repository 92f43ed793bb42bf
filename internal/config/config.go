// ABOUTME: Centralized configuration loaded from environment variables.
// ABOUTME: A .env file is honored when present; every setting has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the assistant.
type Config struct {
	// Storage
	DBPath string

	// Model settings
	OllamaURL  string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Telegram settings
	TelegramToken  string
	AllowedUserIDs []int64

	// Behavior
	Timezone      string
	DefaultUserID int64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:         getEnv("REPBOT_DB_PATH", defaultDBPath()),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		Model:          getEnv("REPBOT_MODEL", "llama3.2"),
		Timeout:        getEnvDuration("REPBOT_LLM_TIMEOUT", 60*time.Second),
		MaxRetries:     getEnvInt("REPBOT_LLM_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("REPBOT_LLM_RETRY_DELAY", 2*time.Second),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AllowedUserIDs: getEnvInt64List("TELEGRAM_ALLOWED_USERS"),
		Timezone:       getEnv("REPBOT_TIMEZONE", "America/New_York"),
		DefaultUserID:  int64(getEnvInt("REPBOT_DEFAULT_USER_ID", 1)),
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that would otherwise fail deep inside a handler.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("REPBOT_LLM_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("REPBOT_LLM_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid REPBOT_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured reference timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Allowed reports whether a Telegram user may talk to the bot. An empty
// allowlist means closed, not open.
func (c *Config) Allowed(userID int64) bool {
	for _, id := range c.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func defaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "repbot", "repbot.db")
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvInt64List(key string) []int64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
