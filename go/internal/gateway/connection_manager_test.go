package gateway

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionManager_BroadcastDuringUnregister(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig(), nil)
	event, err := NewDisplayEvent(EventTypeCountdownHidden, nil)
	require.NoError(t, err)

	for round := 0; round < 500; round++ {
		conns := make([]*Connection, 8)
		for i := range conns {
			conns[i] = &Connection{
				ID:      fmt.Sprintf("screen-%d-%d", round, i),
				Send:    make(chan []byte, 4),
				Manager: cm,
			}
			cm.registerConnection(conns[i])
		}

		var wg sync.WaitGroup
		for _, conn := range conns {
			wg.Add(1)
			go func(conn *Connection) {
				defer wg.Done()
				cm.unregisterConnection(conn)
			}(conn)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() { cm.handleBroadcast(event) })
		}()
		wg.Wait()

		require.Zero(t, cm.ConnectionCount())
		for _, conn := range conns {
			// Closed and drained: whatever the broadcast delivered came first.
			for range conn.Send {
			}
		}
	}
}
