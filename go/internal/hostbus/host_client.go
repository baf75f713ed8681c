package hostbus

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/speedfocus/go/internal/autotimer"
	"github.com/mcdev12/speedfocus/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	commandSubjectPrefix = "review.commands"
	fallbackDefaultEase  = models.Ease(3)
)

// Publisher sends a message on a subject. *nats.Conn implements it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// HostClient is the controller's view of the host. Session state and the
// default ease follow the host events seen by the Dispatcher; requests are
// published as commands.
type HostClient struct {
	pub Publisher

	mu          sync.RWMutex
	sessionID   string
	loaded      bool
	defaultEase models.Ease
}

var _ autotimer.Host = (*HostClient)(nil)

// NewHostClient creates a host client with no session loaded.
func NewHostClient(pub Publisher) *HostClient {
	return &HostClient{pub: pub, defaultEase: fallbackDefaultEase}
}

// OpenSession marks the host session as loaded.
func (h *HostClient) OpenSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessionID = sessionID
	h.loaded = true
	h.defaultEase = fallbackDefaultEase
}

// CloseSession marks the host session as gone.
func (h *HostClient) CloseSession() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaded = false
}

// SetDefaultEase records the ease the host would pick for "good" on the
// current card. Values below 1 reset it to the fallback.
func (h *HostClient) SetDefaultEase(ease models.Ease) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ease < models.EaseAgain {
		ease = fallbackDefaultEase
	}
	h.defaultEase = ease
}

func (h *HostClient) SessionLoaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

func (h *HostClient) DefaultEase() models.Ease {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.defaultEase
}

func (h *HostClient) RevealAnswer() error {
	return h.send(CommandReveal, nil)
}

func (h *HostClient) AnswerCard(ease models.Ease) error {
	return h.send(CommandAnswer, AnswerPayload{Ease: ease})
}

func (h *HostClient) BuryCard() error {
	return h.send(CommandBury, nil)
}

func (h *HostClient) send(commandType string, payload interface{}) error {
	h.mu.RLock()
	sessionID, loaded := h.sessionID, h.loaded
	h.mu.RUnlock()
	if !loaded {
		return autotimer.ErrSessionUnavailable
	}

	cmd := Command{
		CommandID:   uuid.NewString(),
		CommandType: commandType,
		SessionID:   sessionID,
		Timestamp:   time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", commandType, err)
		}
		cmd.Payload = data
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", commandSubjectPrefix, commandType)
	if err := h.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	log.Debug().
		Str("command_id", cmd.CommandID).
		Str("command_type", commandType).
		Str("session_id", sessionID).
		Msg("review command published")
	return nil
}
