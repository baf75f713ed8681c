package models

import "time"

// TimerKind identifies one of the logical timers kept per card.
type TimerKind string

const (
	TimerAlert  TimerKind = "alert"
	TimerReveal TimerKind = "reveal"
	TimerAction TimerKind = "action"
)

// RevealLabel is the countdown label used while waiting to reveal the answer.
const RevealLabel = "Reveal"

// DefaultMoreTimeHotkey is the key bound to the "more time" affordance.
const DefaultMoreTimeHotkey = "m"

// TimerConfig holds the timer settings that apply to the displayed card.
// It is resolved from the owning deck on every phase change and treated as
// an immutable snapshot until the next one.
type TimerConfig struct {
	AutoAlert      time.Duration `json:"auto_alert"`
	AutoAnswer     time.Duration `json:"auto_answer"`
	AutoAgain      time.Duration `json:"auto_again"`
	AutoSkip       bool          `json:"auto_skip"`
	AutoAction     Action        `json:"auto_action"`
	MoreTimeButton bool          `json:"more_time_button"`
	StopOnTyping   bool          `json:"stop_on_typing"`
	MoreTimeHotkey string        `json:"more_time_hotkey"`
}

// DefaultTimerConfig returns the settings used for decks without an override:
// every timer disabled and again as the auto action.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		AutoAction:     ActionAgain,
		MoreTimeButton: true,
		StopOnTyping:   true,
		MoreTimeHotkey: DefaultMoreTimeHotkey,
	}
}

// AutoAlertSeconds returns the alert delay in whole seconds, as shown to the user.
func (c TimerConfig) AutoAlertSeconds() int {
	return int(c.AutoAlert / time.Second)
}
