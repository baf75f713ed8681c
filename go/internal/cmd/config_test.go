package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"NATS_URL", "GATEWAY_PORT", "DECK_CONFIG_PATH", "USER_FILES_DIR", "ALERT_SOUND_PATH",
		"SOUND_PLAYER", "LOG_LEVEL", "CANCEL_ALERT_ON_ANSWER", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATSURL)
	assert.Equal(t, "8765", cfg.GatewayPort)
	assert.Equal(t, "decks.yaml", cfg.DeckConfigPath)
	assert.Empty(t, cfg.UserFilesDir)
	assert.Equal(t, "sounds/alert.mp3", cfg.AlertSoundPath)
	assert.Empty(t, cfg.SoundPlayer)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.CancelAlertOnAnswer)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("GATEWAY_PORT", "9000")
	t.Setenv("DECK_CONFIG_PATH", "/etc/review/decks.yaml")
	t.Setenv("USER_FILES_DIR", "/home/me/user_files")
	t.Setenv("SOUND_PLAYER", "paplay")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CANCEL_ALERT_ON_ANSWER", "true")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg := loadConfig()

	assert.Equal(t, "nats://bus:4222", cfg.NATSURL)
	assert.Equal(t, "9000", cfg.GatewayPort)
	assert.Equal(t, "/etc/review/decks.yaml", cfg.DeckConfigPath)
	assert.Equal(t, "/home/me/user_files", cfg.UserFilesDir)
	assert.Equal(t, "paplay", cfg.SoundPlayer)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.CancelAlertOnAnswer)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SPDF_TEST_INT", "ten")
	t.Setenv("SPDF_TEST_BOOL", "maybe")

	assert.Equal(t, 7, getEnvAsInt("SPDF_TEST_INT", 7))
	assert.True(t, getEnvAsBool("SPDF_TEST_BOOL", true))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "warn", want: zerolog.WarnLevel},
		{in: " Error ", want: zerolog.ErrorLevel},
		{in: "trace", want: zerolog.TraceLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestHealthCheck(t *testing.T) {
	mux := http.NewServeMux()
	setupHealthCheck(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
