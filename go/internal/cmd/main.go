package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mcdev12/speedfocus/go/internal/hostbus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg := loadConfig()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(cfg.LogLevel)

	log.Info().
		Str("nats_url", cfg.NATSURL).
		Str("port", cfg.GatewayPort).
		Msg("starting review timer")

	consumerCfg := hostbus.DefaultConsumerConfig()
	consumerCfg.URL = cfg.NATSURL
	nc, err := hostbus.Connect(consumerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to NATS")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := setupServices(ctx, cfg, nc)
	if err != nil {
		nc.Close()
		log.Fatal().Err(err).Msg("failed to set up services")
	}

	server := setupServer(cfg, services)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.Runner.Run(gctx)
	})
	g.Go(func() error {
		services.Gateway.Start(gctx)
		return nil
	})
	g.Go(func() error {
		if err := services.Consumer.Start(gctx); err != nil {
			return fmt.Errorf("host event consumer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := services.Decks.Watch(gctx); err != nil {
			return fmt.Errorf("deck config watcher: %w", err)
		}
		return nil
	})

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal or a failed component
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case <-gctx.Done():
		log.Error().Msg("review timer component stopped, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	cancel()
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("review timer component failed")
	}

	if err := services.Consumer.Close(); err != nil {
		log.Error().Err(err).Msg("failed to drain NATS connection")
	}

	log.Info().Msg("review timer shutdown complete")
}
