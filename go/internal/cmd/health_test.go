package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNATS bool

func (f fakeNATS) IsConnected() bool { return bool(f) }

type fakeStats struct {
	processed uint64
	last      time.Time
}

func (f fakeStats) Stats() (uint64, time.Time) { return f.processed, f.last }

type fakeScreens int

func (f fakeScreens) ConnectionCount() int { return int(f) }

func TestReadinessChecker(t *testing.T) {
	last := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		connected  bool
		screens    int
		wantCode   int
		wantErrors []string
	}{
		{name: "ready", connected: true, screens: 1, wantCode: http.StatusOK, wantErrors: []string{}},
		{name: "no review screen is still ready", connected: true, wantCode: http.StatusOK, wantErrors: []string{}},
		{name: "nats down", connected: false, screens: 1, wantCode: http.StatusServiceUnavailable, wantErrors: []string{"NATS disconnected"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewReadinessChecker(fakeNATS(tt.connected), fakeStats{processed: 12, last: last}, fakeScreens(tt.screens))

			rec := httptest.NewRecorder()
			checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var status HealthStatus
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
			assert.Equal(t, tt.wantCode == http.StatusOK, status.Healthy)
			assert.Equal(t, tt.connected, status.NATSConnected)
			assert.Equal(t, uint64(12), status.EventsProcessed)
			assert.True(t, last.Equal(status.LastEventTime))
			assert.Equal(t, tt.screens, status.ReviewScreens)
			assert.Equal(t, tt.wantErrors, status.Errors)
		})
	}
}
