package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Config is the daemon configuration, read from the environment.
type Config struct {
	NATSURL             string
	GatewayPort         string
	DeckConfigPath      string
	UserFilesDir        string
	AlertSoundPath      string
	SoundPlayer         string
	LogLevel            zerolog.Level
	CancelAlertOnAnswer bool
	ShutdownTimeout     time.Duration
}

func loadConfig() Config {
	return Config{
		NATSURL:             getEnv("NATS_URL", nats.DefaultURL),
		GatewayPort:         getEnv("GATEWAY_PORT", "8765"),
		DeckConfigPath:      getEnv("DECK_CONFIG_PATH", "decks.yaml"),
		UserFilesDir:        getEnv("USER_FILES_DIR", ""),
		AlertSoundPath:      getEnv("ALERT_SOUND_PATH", "sounds/alert.mp3"),
		SoundPlayer:         getEnv("SOUND_PLAYER", ""),
		LogLevel:            parseLogLevel(getEnv("LOG_LEVEL", "info")),
		CancelAlertOnAnswer: getEnvAsBool("CANCEL_ALERT_ON_ANSWER", false),
		ShutdownTimeout:     time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func parseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
