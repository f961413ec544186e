package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "UPLOAD_BODY_LIMIT",
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "LINE_NUMBER",
		"LOG_LEVEL", "LOG_FORMAT", "KEEP_ALIVE", "KEEP_ALIVE_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.HTTP.Addr())
	}
	if cfg.HTTP.BodyLimit != 32<<20 {
		t.Errorf("BodyLimit = %d", cfg.HTTP.BodyLimit)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.KeepAlive.Enabled {
		t.Error("keep-alive should default off")
	}
	if cfg.KeepAlive.Interval != 10*time.Minute {
		t.Errorf("keep-alive interval = %v", cfg.KeepAlive.Interval)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("LINE_NUMBER", "ligne 2")
	t.Setenv("KEEP_ALIVE", "true")
	t.Setenv("KEEP_ALIVE_INTERVAL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", cfg.HTTP.Addr())
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChatID != "42" {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Telegram.LineNumber != "ligne 2" {
		t.Errorf("line number = %q", cfg.Telegram.LineNumber)
	}
	if !cfg.KeepAlive.Enabled || cfg.KeepAlive.Interval != 5*time.Minute {
		t.Errorf("keep-alive = %+v", cfg.KeepAlive)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "SERVER_PORT", "web"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad keep-alive interval", "KEEP_ALIVE_INTERVAL", "soon"},
		{"token without colon", "TELEGRAM_TOKEN", "notatoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.key == "TELEGRAM_TOKEN" {
				t.Setenv("TELEGRAM_CHAT_ID", "42")
			}
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTelegramValidate(t *testing.T) {
	if err := (TelegramConfig{}).Validate(); err != nil {
		t.Errorf("empty credentials should be valid (disabled): %v", err)
	}
	if err := (TelegramConfig{Token: "123:abc"}).Validate(); err == nil {
		t.Error("token without chat id should be rejected")
	}
	if err := (TelegramConfig{Token: "123:abc", ChatID: "42"}).Validate(); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
}
