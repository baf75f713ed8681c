package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/speedfocus/go/internal/gateway"
	"github.com/rs/zerolog/log"
)

func setupServer(cfg Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	services.Gateway.RegisterRoutes(mux)
	setupHealthCheck(mux)
	mux.Handle("/health/ready", NewReadinessChecker(services.NATS, services.Consumer, services.Gateway))

	return &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.GatewayPort),
		Handler:     gateway.CORSMiddleware(mux),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
