package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, []string{"localhost:5173", "localhost:3000"}, cfg.OriginHosts())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", " https://draw.example.com , ,example.org")
	t.Setenv("EXPORT_WIDTH", "800")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 800, cfg.ExportWidth)
	assert.Equal(t, []string{"https://draw.example.com", "example.org"}, cfg.Origins())
	assert.Equal(t, []string{"draw.example.com", "example.org"}, cfg.OriginHosts())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("EXPORT_HEIGHT", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestUnknownLevelFallsBack(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
