package hostbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/speedfocus/go/internal/autotimer"
	"github.com/mcdev12/speedfocus/go/internal/models"
	"github.com/rs/zerolog/log"
)

const bridgeSubmitTimeout = 2 * time.Second

// Submitter queues work for the controller. *autotimer.Runner implements it.
type Submitter interface {
	Submit(ctx context.Context, fn func(*autotimer.Controller)) error
}

// ConfigSource resolves the timer settings of a deck.
type ConfigSource interface {
	TimerConfig(deckID string) models.TimerConfig
}

// Dispatcher turns host events into controller calls.
type Dispatcher struct {
	runner  Submitter
	configs ConfigSource
	host    *HostClient
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(runner Submitter, configs ConfigSource, host *HostClient) *Dispatcher {
	return &Dispatcher{runner: runner, configs: configs, host: host}
}

// HandleEvent applies one host event. Unknown event types are ignored; a
// payload that does not decode is an error.
func (d *Dispatcher) HandleEvent(ctx context.Context, env Envelope) error {
	switch env.EventType {
	case EventSessionOpened:
		d.host.OpenSession(env.SessionID)
		return nil

	case EventSessionClosed:
		d.host.CloseSession()
		return d.submit(ctx, func(c *autotimer.Controller) { c.OnSessionEnded() })

	case EventQuestionShown:
		var p CardShownPayload
		if err := decodePayload(env, &p); err != nil {
			return err
		}
		cfg := d.configs.TimerConfig(p.DeckID)
		return d.submit(ctx, func(c *autotimer.Controller) { c.OnQuestionShown(cfg) })

	case EventAnswerShown:
		var p CardShownPayload
		if err := decodePayload(env, &p); err != nil {
			return err
		}
		d.host.SetDefaultEase(p.DefaultEase)
		cfg := d.configs.TimerConfig(p.DeckID)
		return d.submit(ctx, func(c *autotimer.Controller) { c.OnAnswerShown(cfg) })

	case EventCardGraded:
		return d.submit(ctx, func(c *autotimer.Controller) { c.OnCardGraded() })

	case EventDialogOpened:
		var p DialogOpenedPayload
		if err := decodePayload(env, &p); err != nil {
			return err
		}
		log.Debug().Str("dialog", p.Name).Msg("host dialog opened")
		return d.submit(ctx, func(c *autotimer.Controller) { c.OnDialogOpened() })

	case EventMoreTimeRequested:
		return d.submit(ctx, func(c *autotimer.Controller) { c.MoreTime() })

	case EventBridgeMessage:
		var p BridgeMessagePayload
		if err := decodePayload(env, &p); err != nil {
			return err
		}
		return d.submit(ctx, func(c *autotimer.Controller) { c.HandleBridgeToken(p.Token) })

	default:
		log.Debug().
			Str("event_id", env.EventID).
			Str("event_type", env.EventType).
			Msg("ignoring unknown host event")
		return nil
	}
}

// DeliverBridgeToken forwards a token from a review screen to the
// controller. It lets the dispatcher serve as the gateway's bridge sink.
func (d *Dispatcher) DeliverBridgeToken(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), bridgeSubmitTimeout)
	defer cancel()
	if err := d.submit(ctx, func(c *autotimer.Controller) { c.HandleBridgeToken(token) }); err != nil {
		log.Error().Err(err).Str("token", token).Msg("failed to queue bridge message")
	}
}

func (d *Dispatcher) submit(ctx context.Context, fn func(*autotimer.Controller)) error {
	if err := d.runner.Submit(ctx, fn); err != nil {
		return fmt.Errorf("submit to runner: %w", err)
	}
	return nil
}

func decodePayload(env Envelope, v interface{}) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", env.EventType)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.EventType, err)
	}
	return nil
}
