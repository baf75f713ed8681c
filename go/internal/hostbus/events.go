// Package hostbus connects the review timer to the host application over NATS:
// host lifecycle events come in on a JetStream consumer and review commands go
// back out as plain NATS messages.
package hostbus

import (
	"encoding/json"
	"time"

	"github.com/mcdev12/speedfocus/go/internal/models"
)

// Host event types published on review.events.<type>.
const (
	EventSessionOpened     = "SessionOpened"
	EventSessionClosed     = "SessionClosed"
	EventQuestionShown     = "QuestionShown"
	EventAnswerShown       = "AnswerShown"
	EventCardGraded        = "CardGraded"
	EventDialogOpened      = "DialogOpened"
	EventMoreTimeRequested = "MoreTimeRequested"
	EventBridgeMessage     = "BridgeMessage"
)

// Envelope wraps every host event on the stream.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	SessionID string          `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// CardShownPayload is the payload of QuestionShown and AnswerShown.
type CardShownPayload struct {
	DeckID      string      `json:"deck_id"`
	CardID      string      `json:"card_id"`
	DefaultEase models.Ease `json:"default_ease,omitempty"`
}

// DialogOpenedPayload names the dialog the host opened.
type DialogOpenedPayload struct {
	Name string `json:"name"`
}

// BridgeMessagePayload carries a token from the host's web view.
type BridgeMessagePayload struct {
	Token string `json:"token"`
}

// Review command types published on review.commands.<type>.
const (
	CommandReveal = "reveal"
	CommandAnswer = "answer"
	CommandBury   = "bury"
)

// Command is sent to the host to reveal, grade or bury the current card.
type Command struct {
	CommandID   string          `json:"commandId"`
	CommandType string          `json:"commandType"`
	SessionID   string          `json:"sessionId,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// AnswerPayload is the payload of an answer command.
type AnswerPayload struct {
	Ease models.Ease `json:"ease"`
}
