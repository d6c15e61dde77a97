package app

import (
	"testing"

	"github.com/gibzwein/RCE-reader/pkg/api/v1/config"
	"github.com/gibzwein/RCE-reader/pkg/indicator/dummy"
	"github.com/gibzwein/RCE-reader/pkg/indicator/modbusled"
	"github.com/gibzwein/RCE-reader/pkg/indicator/mqttled"
	"github.com/stretchr/testify/assert"
)

type nopPublisher struct{}

func (nopPublisher) Publish(topic string, payload []byte, retain bool, qos byte) error {
	return nil
}

func TestNewIndicator(t *testing.T) {
	var tests = []struct {
		name      string
		conf      *config.CliConfig
		publisher bool
		expected  interface{}
		wantErr   bool
	}{
		{name: "default", conf: &config.CliConfig{}, expected: &dummy.Dummy{}},
		{name: "dummy", conf: &config.CliConfig{IndicatorType: "dummy"}, expected: &dummy.Dummy{}},
		{name: "modbus", conf: &config.CliConfig{IndicatorType: "modbus", ModbusAddress: "127.0.0.1:502", ModbusFullScale: 1000}, expected: &modbusled.ModbusLED{}},
		{name: "modbus without address", conf: &config.CliConfig{IndicatorType: "modbus"}, wantErr: true},
		{name: "mqtt", conf: &config.CliConfig{IndicatorType: "mqtt", MQTTPrefix: "rce"}, publisher: true, expected: &mqttled.MQTTLED{}},
		{name: "mqtt without broker", conf: &config.CliConfig{IndicatorType: "mqtt"}, wantErr: true},
		{name: "unknown", conf: &config.CliConfig{IndicatorType: "neon"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var err error
			var got interface{}
			if tt.publisher {
				got, err = NewIndicator(tt.conf, nopPublisher{})
			} else {
				got, err = NewIndicator(tt.conf, nil)
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.IsType(t, tt.expected, got)
		})
	}
}
