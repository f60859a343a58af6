package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	ServerPort      int           `json:"server_port"`
	LogLevel        string        `json:"log_level"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Version         string        `json:"version"`

	// Request bodies above this size are rejected with 413
	MaxBodyBytes int64 `json:"max_body_bytes"`

	// Store
	StoreBackend   string        `json:"store_backend"`
	LockTimeout    time.Duration `json:"lock_timeout"` // bounded wait for the in-memory store lock
	RedisURL       string        `json:"redis_url"`
	RedisKeyPrefix string        `json:"redis_key_prefix"`
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvInt("PORT", 8080),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Version:         getEnvString("VERSION", "1.0.0"),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 512)),
		StoreBackend:    getEnvString("STORE_BACKEND", BackendMemory),
		LockTimeout:     getEnvDuration("LOCK_TIMEOUT", 100*time.Millisecond),
		RedisURL:        getEnvString("REDIS_URL", "redis://localhost:6379"),
		RedisKeyPrefix:  getEnvString("REDIS_KEY_PREFIX", "tasklist"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// validate performs basic validation of the configuration
func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true, "FATAL": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, ERROR, or FATAL", c.LogLevel)
	}
	c.LogLevel = upperLevel

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("invalid max body size %d: must be at least 1 byte", c.MaxBodyBytes)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("invalid lock timeout %v: must not be negative", c.LockTimeout)
	}
	if c.LockTimeout > 10*time.Second {
		return fmt.Errorf("invalid lock timeout %v: must not exceed 10 seconds", c.LockTimeout)
	}

	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis URL cannot be empty when the redis backend is selected")
		}
		if strings.TrimSpace(c.RedisKeyPrefix) == "" {
			return fmt.Errorf("redis key prefix cannot be empty when the redis backend is selected")
		}
	default:
		return fmt.Errorf("invalid store backend '%s': must be memory or redis", c.StoreBackend)
	}

	return nil
}
