package mqtt

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibzwein/RCE-reader/pkg/price"
	"github.com/gibzwein/RCE-reader/pkg/state"
	"github.com/gibzwein/RCE-reader/pkg/tier"
)

func TestStateReporterPublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	server, err := Start(ctx, wg, "127.0.0.1:0")
	require.NoError(t, err)
	defer func() {
		cancel()
		wg.Wait()
	}()

	received := make(chan []byte, 1)
	err = server.Subscribe("rce/#", 1, func(cl *mqttv2.Client, sub packets.Subscription, pk packets.Packet) {
		select {
		case received <- pk.Payload:
		default:
		}
	})
	require.NoError(t, err)

	r := NewStateReporter(server, "rce")
	r.Report(state.Snapshot{
		Date:  "20240101",
		Hour:  13,
		Price: 42.5,
		Stats: price.Stats{Min: 10, Max: 100, Average: 50},
		Tier:  tier.Low,
	})

	select {
	case payload := <-received:
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(payload, &m))
		assert.Equal(t, "low", m["tier"])
		assert.Equal(t, 42.5, m["price"])
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for state")
	}
}
