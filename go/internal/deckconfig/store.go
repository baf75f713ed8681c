// Package deckconfig resolves per-deck timer settings from a YAML file.
package deckconfig

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mcdev12/speedfocus/go/internal/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DeckSettings is the per-deck block of the file. Nil fields fall back to
// the file defaults, then to models.DefaultTimerConfig.
type DeckSettings struct {
	AutoAlert  *int    `yaml:"auto_alert" validate:"omitempty,gte=0"`
	AutoAnswer *int    `yaml:"auto_answer" validate:"omitempty,gte=0"`
	AutoAgain  *int    `yaml:"auto_again" validate:"omitempty,gte=0"`
	AutoSkip   *bool   `yaml:"auto_skip"`
	AutoAction *string `yaml:"auto_action" validate:"omitempty,auto_action"`
}

// GlobalSettings apply to every deck.
type GlobalSettings struct {
	MoreTimeButton *bool   `yaml:"more_time_button"`
	StopWhenTyping *bool   `yaml:"stop_when_typing"`
	MoreTimeHotkey *string `yaml:"more_time_hotkey"`
}

// File is the on-disk layout.
type File struct {
	Global   GlobalSettings          `yaml:"global"`
	Defaults DeckSettings            `yaml:"defaults"`
	Decks    map[string]DeckSettings `yaml:"decks" validate:"dive"`
}

// Store serves TimerConfig lookups from the last successfully loaded file.
type Store struct {
	path string

	mu   sync.RWMutex
	file File
}

// Load reads the file at path. A missing file is not an error: every deck
// then uses the defaults.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads from.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the file. On error the previous settings are kept.
func (s *Store) Reload() error {
	file, err := readFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.file = file
	s.mu.Unlock()

	log.Info().
		Str("path", s.path).
		Int("decks", len(file.Decks)).
		Msg("loaded deck timer config")
	return nil
}

func readFile(path string) (File, error) {
	var file File
	if path == "" {
		return file, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("deck config file not found, using defaults")
		return file, nil
	}
	if err != nil {
		return file, fmt.Errorf("failed to read deck config: %w", err)
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse deck config: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return file, fmt.Errorf("invalid deck config: %w", err)
	}
	return file, nil
}

// TimerConfig returns the settings for the deck owning the displayed card.
func (s *Store) TimerConfig(deckID string) models.TimerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := models.DefaultTimerConfig()
	s.file.Defaults.apply(&cfg)
	if deck, ok := s.file.Decks[deckID]; ok {
		deck.apply(&cfg)
	}
	s.file.Global.apply(&cfg)
	return cfg
}

func (d DeckSettings) apply(cfg *models.TimerConfig) {
	if d.AutoAlert != nil {
		cfg.AutoAlert = seconds(*d.AutoAlert)
	}
	if d.AutoAnswer != nil {
		cfg.AutoAnswer = seconds(*d.AutoAnswer)
	}
	if d.AutoAgain != nil {
		cfg.AutoAgain = seconds(*d.AutoAgain)
	}
	if d.AutoSkip != nil {
		cfg.AutoSkip = *d.AutoSkip
	}
	if d.AutoAction != nil {
		if a, ok := models.ParseAction(*d.AutoAction); ok {
			cfg.AutoAction = a
		}
	}
}

func (g GlobalSettings) apply(cfg *models.TimerConfig) {
	if g.MoreTimeButton != nil {
		cfg.MoreTimeButton = *g.MoreTimeButton
	}
	if g.StopWhenTyping != nil {
		cfg.StopOnTyping = *g.StopWhenTyping
	}
	if g.MoreTimeHotkey != nil && *g.MoreTimeHotkey != "" {
		cfg.MoreTimeHotkey = *g.MoreTimeHotkey
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("auto_action", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseAction(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(err)
	}
	return v
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
