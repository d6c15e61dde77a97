package modbusled

import (
	"fmt"

	"github.com/gibzwein/RCE-reader/pkg/indicator"
	"github.com/gibzwein/RCE-reader/pkg/modbusclient"
	"github.com/gibzwein/RCE-reader/pkg/tier"
	"github.com/sirupsen/logrus"
)

// ModbusLED drives an RGB light whose channels are three consecutive holding registers
// starting at address. FullScale is the register value for a fully lit channel.
type ModbusLED struct {
	client    modbusclient.Client
	address   uint16
	fullScale uint16
}

func New(client modbusclient.Client, address, fullScale uint16) *ModbusLED {
	if fullScale == 0 {
		fullScale = 255
	}
	return &ModbusLED{
		client:    client,
		address:   address,
		fullScale: fullScale,
	}
}

func (m *ModbusLED) SetColor(c tier.RGB) error {
	values := []uint16{
		indicator.Scale255(c.R, m.fullScale),
		indicator.Scale255(c.G, m.fullScale),
		indicator.Scale255(c.B, m.fullScale),
	}
	logrus.WithFields(logrus.Fields{"address": m.address, "values": values}).Debug("modbusled: SetColor")
	return m.client.WriteMultipleRegisters(m.address, values)
}

// Color reads the channel registers back.
func (m *ModbusLED) Color() (tier.RGB, error) {
	values, err := m.client.ReadHoldingRegisters(m.address, 3)
	if err != nil {
		return tier.RGB{}, err
	}
	if len(values) != 3 {
		return tier.RGB{}, fmt.Errorf("expected 3 registers got %d", len(values))
	}
	return tier.RGB{
		R: unscale(values[0], m.fullScale),
		G: unscale(values[1], m.fullScale),
		B: unscale(values[2], m.fullScale),
	}, nil
}

func unscale(v, full uint16) uint8 {
	if v >= full {
		return 255
	}
	return uint8(uint32(v) * 255 / uint32(full))
}
