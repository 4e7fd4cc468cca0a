package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port      int
	DBPath    string
	TasksFile string
	APIKey    string
	LogLevel  string
	// Write-lock wait before a submission gives up with StoreBusy.
	LockWaitMS int
	// Default projection window for the timeline endpoint.
	TimelineDays int
	// StatusCache controls whether the task file is rewritten with the
	// derived status after each commit. Display convenience only.
	StatusCache bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:         envInt("PORT", 8600),
		DBPath:       envStr("CHORE_DB_PATH", "/data/chores.db"),
		TasksFile:    envStr("CHORE_TASKS_FILE", "/data/tasks.yaml"),
		APIKey:       envStr("API_KEY", ""),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		LockWaitMS:   envInt("LOCK_WAIT_MS", 2000),
		TimelineDays: envInt("TIMELINE_DAYS", 365),
		StatusCache:  envBool("STATUS_CACHE", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("CHORE_DB_PATH must not be empty")
	}
	if c.TasksFile == "" {
		return fmt.Errorf("CHORE_TASKS_FILE must not be empty")
	}
	if c.LockWaitMS < 1 {
		return fmt.Errorf("LOCK_WAIT_MS must be positive, got %d", c.LockWaitMS)
	}
	if c.TimelineDays < 1 {
		return fmt.Errorf("TIMELINE_DAYS must be positive, got %d", c.TimelineDays)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
