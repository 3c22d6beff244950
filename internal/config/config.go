package config

import (
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the organizer.
type Config struct {
	Port          string
	DatabaseURL   string
	TelegramToken string // empty disables the polling bot and the digest
	WebhookSecret string
	DigestChatID  int64
	DigestTime    string // HH:MM local time
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		WebhookSecret: strings.TrimSpace(os.Getenv("TELEGRAM_WEBHOOK_SECRET")),
		DigestChatID:  parseChatID(strings.TrimSpace(os.Getenv("DIGEST_CHAT_ID"))),
		DigestTime:    strings.TrimSpace(os.Getenv("DIGEST_TIME")),
	}

	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "home_organizer.db"
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = "08:00"
	}

	return cfg, nil
}

func parseChatID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
