package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DIGEST_CHAT_ID", "")
	t.Setenv("DIGEST_TIME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "home_organizer.db", cfg.DatabaseURL)
	assert.Equal(t, "08:00", cfg.DigestTime)
	assert.Empty(t, cfg.TelegramToken)
	assert.Zero(t, cfg.DigestChatID)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "data/organizer.db")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DIGEST_CHAT_ID", "-100200300")
	t.Setenv("DIGEST_TIME", "21:30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/organizer.db", cfg.DatabaseURL)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(-100200300), cfg.DigestChatID)
	assert.Equal(t, "21:30", cfg.DigestTime)
}

func TestLoadIgnoresBadChatID(t *testing.T) {
	t.Setenv("DIGEST_CHAT_ID", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.DigestChatID)
}
