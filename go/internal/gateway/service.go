// Package gateway pushes auto-timer display events to review screens over
// WebSocket and receives bridge tokens back from them.
package gateway

import (
	"context"
	"net/http"

	"github.com/mcdev12/speedfocus/go/internal/notify"
	"github.com/rs/zerolog/log"
)

// Service is the review gateway: a connection manager, its HTTP handler and
// the display adapter the controller renders through.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	display           *Display
}

// NewService creates a gateway delivering inbound tokens to bridge and
// playing alert sounds with player.
func NewService(config ConnectionConfig, bridge BridgeSink, player notify.Player) *Service {
	cm := NewConnectionManager(config, bridge)
	return &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm),
		display:           NewDisplay(cm, player),
	}
}

// Display returns the adapter implementing autotimer.Display and
// autotimer.Notifier.
func (s *Service) Display() *Display {
	return s.display
}

// Start runs the broadcast loop until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	log.Info().Msg("starting review gateway")
	s.connectionManager.Start(ctx)
	log.Info().Msg("review gateway stopped")
}

// RegisterRoutes registers the WebSocket HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("review gateway routes registered")
}

// ConnectionCount returns the number of connected review screens.
func (s *Service) ConnectionCount() int {
	return s.connectionManager.ConnectionCount()
}
