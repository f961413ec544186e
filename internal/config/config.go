// Package config loads application configuration from environment
// variables with typed sections and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Telegram  TelegramConfig
	Logging   LoggingConfig
	KeepAlive KeepAliveConfig
}

// HTTPConfig governs the HTTP server.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // max upload size in bytes
}

// TelegramConfig identifies the notification chat and the telephony line
// announced in call messages.
type TelegramConfig struct {
	Token      string
	ChatID     string
	LineNumber string
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

// KeepAliveConfig enables the periodic liveness log line used on hosting
// platforms that idle quiet processes.
type KeepAliveConfig struct {
	Enabled  bool
	Interval time.Duration
}

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = 8080
	defaultBodyLimit = 32 << 20
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultKeepAlive = 10 * time.Minute
)

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:      valueOrDefault("SERVER_HOST", defaultHost),
			BodyLimit: parseIntWithDefault("UPLOAD_BODY_LIMIT", defaultBodyLimit),
		},
		Telegram: TelegramConfig{
			Token:      os.Getenv("TELEGRAM_TOKEN"),
			ChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
			LineNumber: os.Getenv("LINE_NUMBER"),
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLogLevel),
			Format: valueOrDefault("LOG_FORMAT", defaultLogFormat),
		},
		KeepAlive: KeepAliveConfig{
			Enabled:  parseBoolWithDefault("KEEP_ALIVE", false),
			Interval: defaultKeepAlive,
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if v := os.Getenv("KEEP_ALIVE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid KEEP_ALIVE_INTERVAL: %w", err)
		}
		cfg.KeepAlive.Interval = d
	}

	if err := cfg.Telegram.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects malformed Telegram credentials. An empty token is
// fine: notifications are simply disabled.
func (c TelegramConfig) Validate() error {
	if c.Token != "" && !strings.Contains(c.Token, ":") {
		return fmt.Errorf("TELEGRAM_TOKEN has invalid format")
	}
	if c.Token != "" && c.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
