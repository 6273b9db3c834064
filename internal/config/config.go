// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	FrontendURL  string
	StoreBackend string
	DBPath       string
	RedisAddr    string
	Upstream     UpstreamConfig
	Stream       StreamConfig
}

// UpstreamConfig addresses the hosted inference service. The API key and
// account identifiers are injected secrets, never literals in code.
type UpstreamConfig struct {
	URL        string
	APIKey     string
	IdentityID string
	AgentID    string
	Timeout    time.Duration
}

// StreamConfig controls the pseudo-stream chat delivery.
type StreamConfig struct {
	FrameDelay         time.Duration
	MaxRequestBodySize int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendSQLite)),
		DBPath:       getEnv("DB_PATH", "./data/mentorlabs.db"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		Upstream: UpstreamConfig{
			URL:        getEnv("MENTOR_API_URL", ""),
			APIKey:     getEnv("MENTOR_API_KEY", ""),
			IdentityID: getEnv("MENTOR_IDENTITY_ID", ""),
			AgentID:    getEnv("MENTOR_AGENT_ID", ""),
			Timeout:    getEnvDuration("MENTOR_API_TIMEOUT", 30*time.Second),
		},
		Stream: StreamConfig{
			FrameDelay:         getEnvDuration("STREAM_FRAME_DELAY", 50*time.Millisecond),
			MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.StoreBackend {
	case StoreBackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty")
		}
	case StoreBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendSQLite, StoreBackendRedis, c.StoreBackend)
	}
	if c.Upstream.URL == "" {
		return fmt.Errorf("MENTOR_API_URL cannot be empty")
	}
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("MENTOR_API_KEY cannot be empty")
	}
	if c.Upstream.IdentityID == "" {
		return fmt.Errorf("MENTOR_IDENTITY_ID cannot be empty")
	}
	if c.Upstream.AgentID == "" {
		return fmt.Errorf("MENTOR_AGENT_ID cannot be empty")
	}
	if c.Stream.FrameDelay <= 0 {
		return fmt.Errorf("STREAM_FRAME_DELAY must be > 0")
	}
	if c.Stream.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
