package mqtt

import (
	"context"
	"encoding/json"
	"sync"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/sirupsen/logrus"

	"github.com/gibzwein/RCE-reader/pkg/state"
)

// Publisher is the inline client of the embedded broker.
type Publisher interface {
	Publish(topic string, payload []byte, retain bool, qos byte) error
}

// Start runs an embedded broker on address until ctx is done.
func Start(ctx context.Context, wg *sync.WaitGroup, address string) (*mqttv2.Server, error) {
	server := mqttv2.New(&mqttv2.Options{
		InlineClient: true,
	})

	// Allow all connections.
	_ = server.AddHook(new(auth.AllowHook), nil)

	tcp := listeners.NewTCP(listeners.Config{ID: "t1", Address: address})
	err := server.AddListener(tcp)
	if err != nil {
		return server, err
	}

	err = server.Serve()
	if err != nil {
		return server, err
	}
	logrus.WithField("address", address).Info("mqtt broker listening")

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := server.Close(); err != nil {
			logrus.Errorf("error closing mqtt broker: %s", err)
		}
	}()
	return server, nil
}

// StateReporter publishes every snapshot as a retained JSON message on <prefix>/state.
type StateReporter struct {
	publisher Publisher
	topic     string
}

func NewStateReporter(p Publisher, prefix string) *StateReporter {
	return &StateReporter{
		publisher: p,
		topic:     prefix + "/state",
	}
}

func (r *StateReporter) Report(s state.Snapshot) {
	b, err := json.Marshal(s.Map())
	if err != nil {
		logrus.Errorf("error encoding snapshot: %s", err)
		return
	}
	if err := r.publisher.Publish(r.topic, b, true, 0); err != nil {
		logrus.Errorf("error publishing to %s: %s", r.topic, err)
	}
}
