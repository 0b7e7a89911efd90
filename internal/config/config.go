// Package config holds the viewer server configuration, loaded from
// environment variables with command-line overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// globalConfig stores the configuration loaded with command-line
// overrides so the websocket handler sees the same settings the server
// started with.
var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig
	Decode   DecodeConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// LoadOptions holds command-line override options.
type LoadOptions struct {
	Host     string
	Port     string
	LogLevel string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DecodeConfig bounds the raster payloads the server accepts. The
// limits guard against absurd declared dimensions, not against valid
// archival material.
type DecodeConfig struct {
	MaxWidth        int
	MaxHeight       int
	MaxPayloadBytes int
}

// SecurityConfig holds connection policy settings.
type SecurityConfig struct {
	AllowedOrigins []string
	MaxConnections int
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables with defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration with command-line overrides.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	config := &Config{}

	config.Server.Host = getOverrideOrEnv(opts.Host, "SERVER_HOST", "0.0.0.0")
	config.Server.Port = getOverrideOrEnv(opts.Port, "SERVER_PORT", "8080")
	config.Server.ReadTimeout = getDurationWithDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	config.Server.WriteTimeout = getDurationWithDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	config.Server.IdleTimeout = getDurationWithDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	config.Decode.MaxWidth = getIntWithDefault("DECODE_MAX_WIDTH", 8192)
	config.Decode.MaxHeight = getIntWithDefault("DECODE_MAX_HEIGHT", 8192)
	config.Decode.MaxPayloadBytes = getIntWithDefault("DECODE_MAX_PAYLOAD_BYTES", 32<<20)

	config.Security.AllowedOrigins = getStringSliceWithDefault("ALLOWED_ORIGINS", []string{})
	config.Security.MaxConnections = getIntWithDefault("MAX_CONNECTIONS", 100)

	config.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", "info")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = config
	configMutex.Unlock()

	return config, nil
}

// GetGlobalConfig returns the globally stored configuration.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}

	if c.Decode.MaxWidth <= 0 || c.Decode.MaxHeight <= 0 {
		return fmt.Errorf("decode dimension limits must be positive")
	}

	if c.Decode.MaxPayloadBytes <= 0 {
		return fmt.Errorf("payload size limit must be positive")
	}

	if c.Security.MaxConnections <= 0 {
		return fmt.Errorf("max connections must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceWithDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return splitString(value, ",")
	}
	return defaultValue
}

// getOverrideOrEnv returns command-line override value, env value, or default.
func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	return getEnvWithDefault(envKey, defaultValue)
}

func splitString(s, sep string) []string {
	if s == "" {
		return []string{}
	}

	var result []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
