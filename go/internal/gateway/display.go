package gateway

import (
	"time"

	"github.com/mcdev12/speedfocus/go/internal/notify"
	"github.com/rs/zerolog/log"
)

// Broadcaster fans display events out to review screens.
type Broadcaster interface {
	Broadcast(event *DisplayEvent)
}

// Display renders controller output as events for the review screen. It
// implements both autotimer.Display and autotimer.Notifier.
type Display struct {
	out    Broadcaster
	player notify.Player
}

// NewDisplay creates a display. player may be nil, in which case sounds are
// only announced to the review screen.
func NewDisplay(out Broadcaster, player notify.Player) *Display {
	return &Display{out: out, player: player}
}

func (d *Display) ShowCountdown(label string, dur time.Duration) {
	d.emit(EventTypeCountdownShown, CountdownPayload{Label: label, DurationMs: dur.Milliseconds()})
}

func (d *Display) HideCountdown() {
	d.emit(EventTypeCountdownHidden, nil)
}

func (d *Display) ShowAffordance(hotkey string) {
	d.emit(EventTypeAffordanceShown, AffordancePayload{Hotkey: hotkey})
}

func (d *Display) HideAffordance() {
	d.emit(EventTypeAffordanceHidden, nil)
}

func (d *Display) ShowTransientMessage(text string, dur time.Duration) {
	d.emit(EventTypeTransientMessage, TransientMessagePayload{Text: text, DurationMs: dur.Milliseconds()})
}

// PlaySound plays path locally and tells the review screen about it.
// Playback failures are logged and never surface to the controller.
func (d *Display) PlaySound(path string) {
	if d.player != nil {
		if err := d.player.Play(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to play alert sound")
		}
	}
	d.emit(EventTypeSoundRequested, SoundPayload{Path: path})
}

func (d *Display) emit(eventType EventType, payload interface{}) {
	event, err := NewDisplayEvent(eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build display event")
		return
	}
	d.out.Broadcast(event)
}
