package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Action
		wantOK bool
	}{
		{name: "lower case", input: "hard", want: ActionHard, wantOK: true},
		{name: "mixed case", input: "Good", want: ActionGood, wantOK: true},
		{name: "surrounding whitespace", input: "  bury ", want: ActionBury, wantOK: true},
		{name: "unknown", input: "easy", want: "", wantOK: false},
		{name: "empty", input: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAction(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_EffectiveAndLabel(t *testing.T) {
	tests := []struct {
		action    Action
		effective Action
		label     string
	}{
		{action: ActionAgain, effective: ActionAgain, label: "Again"},
		{action: ActionHard, effective: ActionHard, label: "Hard"},
		{action: ActionGood, effective: ActionGood, label: "Good"},
		{action: ActionBury, effective: ActionBury, label: "Bury"},
		{action: "", effective: ActionAgain, label: "Again"},
		{action: "HARD", effective: ActionHard, label: "Hard"},
		{action: "bogus", effective: ActionAgain, label: "Again"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.effective, tt.action.Effective())
			assert.Equal(t, tt.label, tt.action.Label())
		})
	}
}

func TestDefaultTimerConfig(t *testing.T) {
	cfg := DefaultTimerConfig()

	assert.Zero(t, cfg.AutoAlert)
	assert.Zero(t, cfg.AutoAnswer)
	assert.Zero(t, cfg.AutoAgain)
	assert.False(t, cfg.AutoSkip)
	assert.Equal(t, ActionAgain, cfg.AutoAction)
	assert.Equal(t, DefaultMoreTimeHotkey, cfg.MoreTimeHotkey)
}

func TestTimerConfig_AutoAlertSeconds(t *testing.T) {
	cfg := TimerConfig{AutoAlert: 12500 * time.Millisecond}
	assert.Equal(t, 12, cfg.AutoAlertSeconds())
}
