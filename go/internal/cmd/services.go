package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/speedfocus/go/internal/autotimer"
	"github.com/mcdev12/speedfocus/go/internal/deckconfig"
	"github.com/mcdev12/speedfocus/go/internal/gateway"
	"github.com/mcdev12/speedfocus/go/internal/hostbus"
	"github.com/mcdev12/speedfocus/go/internal/notify"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const timerFireBuffer = 16

type Services struct {
	NATS     *nats.Conn
	Decks    *deckconfig.Store
	Gateway  *gateway.Service
	Runner   *autotimer.Runner
	Consumer *hostbus.Consumer
}

func setupServices(ctx context.Context, cfg Config, nc *nats.Conn) (*Services, error) {
	// Deck config → host client → gateway → controller → runner → dispatcher → consumer
	decks, err := deckconfig.Load(cfg.DeckConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load deck config: %w", err)
	}

	host := hostbus.NewHostClient(nc)

	var dispatcher *hostbus.Dispatcher
	gw := gateway.NewService(
		gateway.DefaultConnectionConfig(),
		gateway.BridgeFunc(func(token string) { dispatcher.DeliverBridgeToken(token) }),
		notify.NewCommandPlayer(cfg.SoundPlayer),
	)
	display := gw.Display()

	alertSound := notify.ResolveAlertPath(cfg.UserFilesDir, cfg.AlertSoundPath)
	opts := []autotimer.Option{
		autotimer.WithLogger(log.Logger.With().Str("component", "autotimer").Logger()),
		autotimer.WithAlertSound(alertSound),
	}
	if cfg.CancelAlertOnAnswer {
		opts = append(opts, autotimer.WithCancelAlertOnAnswer())
	}

	scheduler := autotimer.NewScheduler(clockwork.NewRealClock(), timerFireBuffer)
	controller := autotimer.NewController(scheduler, display, host, display, opts...)
	runner := autotimer.NewRunner(controller, scheduler)
	dispatcher = hostbus.NewDispatcher(runner, decks, host)

	consumer, err := hostbus.NewConsumer(ctx, nc, dispatcher, hostbus.DefaultConsumerConfig())
	if err != nil {
		return nil, fmt.Errorf("create host event consumer: %w", err)
	}

	log.Info().
		Str("deck_config", decks.Path()).
		Str("alert_sound", alertSound).
		Bool("cancel_alert_on_answer", cfg.CancelAlertOnAnswer).
		Msg("review timer services ready")

	return &Services{
		NATS:     nc,
		Decks:    decks,
		Gateway:  gw,
		Runner:   runner,
		Consumer: consumer,
	}, nil
}
