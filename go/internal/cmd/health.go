package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type HealthStatus struct {
	Healthy         bool      `json:"healthy"`
	NATSConnected   bool      `json:"nats_connected"`
	EventsProcessed uint64    `json:"events_processed"`
	LastEventTime   time.Time `json:"last_event_time"`
	ReviewScreens   int       `json:"review_screens"`
	Errors          []string  `json:"errors"`
}

type natsStatus interface {
	IsConnected() bool
}

type eventStats interface {
	Stats() (uint64, time.Time)
}

type screenCounter interface {
	ConnectionCount() int
}

// ReadinessChecker reports whether the daemon can receive host events.
// A missing review screen is reported but is not a failure.
type ReadinessChecker struct {
	nats    natsStatus
	events  eventStats
	screens screenCounter
}

func NewReadinessChecker(nats natsStatus, events eventStats, screens screenCounter) *ReadinessChecker {
	return &ReadinessChecker{nats: nats, events: events, screens: screens}
}

func (h *ReadinessChecker) Check() HealthStatus {
	status := HealthStatus{
		Healthy: true,
		Errors:  []string{},
	}

	status.EventsProcessed, status.LastEventTime = h.events.Stats()
	status.ReviewScreens = h.screens.ConnectionCount()

	status.NATSConnected = h.nats.IsConnected()
	if !status.NATSConnected {
		status.Healthy = false
		status.Errors = append(status.Errors, "NATS disconnected")
	}

	return status
}

func (h *ReadinessChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write readiness response")
	}
}
