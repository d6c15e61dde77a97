package mqttled

import (
	"encoding/json"
	"fmt"

	"github.com/gibzwein/RCE-reader/pkg/mqtt"
	"github.com/gibzwein/RCE-reader/pkg/tier"
	"github.com/sirupsen/logrus"
)

// MQTTLED publishes the colour as a retained message so lights subscribing to <prefix>/color
// pick it up on connect.
type MQTTLED struct {
	publisher mqtt.Publisher
	topic     string
}

func New(p mqtt.Publisher, prefix string) *MQTTLED {
	return &MQTTLED{
		publisher: p,
		topic:     prefix + "/color",
	}
}

func (m *MQTTLED) SetColor(c tier.RGB) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"topic": m.topic, "color": c}).Debug("mqttled: SetColor")
	if err := m.publisher.Publish(m.topic, b, true, 1); err != nil {
		return fmt.Errorf("error publishing to %s: %w", m.topic, err)
	}
	return nil
}
