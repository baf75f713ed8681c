package gateway

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DisplayEvent is pushed to every connected review screen.
type DisplayEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// EventType represents the type of display event
type EventType string

const (
	EventTypeCountdownShown   EventType = "countdown_shown"
	EventTypeCountdownHidden  EventType = "countdown_hidden"
	EventTypeAffordanceShown  EventType = "affordance_shown"
	EventTypeAffordanceHidden EventType = "affordance_hidden"
	EventTypeTransientMessage EventType = "transient_message"
	EventTypeSoundRequested   EventType = "sound_requested"
)

// CountdownPayload starts a visible countdown. The client counts down on its
// own; the server timer stays authoritative.
type CountdownPayload struct {
	Label      string `json:"label"`
	DurationMs int64  `json:"duration_ms"`
}

// AffordancePayload shows the "more time" button.
type AffordancePayload struct {
	Hotkey string `json:"hotkey"`
}

// TransientMessagePayload is a tooltip that disappears on its own.
type TransientMessagePayload struct {
	Text       string `json:"text"`
	DurationMs int64  `json:"duration_ms"`
}

// SoundPayload asks the client to play a sound.
type SoundPayload struct {
	Path string `json:"path"`
}

// ClientMessage is sent by the review screen over the bridge.
type ClientMessage struct {
	Token string `json:"token"`
}

// NewDisplayEvent builds an event with a fresh ID. A nil payload is omitted.
func NewDisplayEvent(eventType EventType, payload interface{}) (*DisplayEvent, error) {
	event := &DisplayEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		event.Data = data
	}
	return event, nil
}
