package app

import (
	"fmt"

	"github.com/gibzwein/RCE-reader/pkg/api/v1/config"
	"github.com/gibzwein/RCE-reader/pkg/api/v1/types"
	"github.com/gibzwein/RCE-reader/pkg/indicator"
	"github.com/gibzwein/RCE-reader/pkg/indicator/dummy"
	"github.com/gibzwein/RCE-reader/pkg/indicator/modbusled"
	"github.com/gibzwein/RCE-reader/pkg/indicator/mqttled"
	"github.com/gibzwein/RCE-reader/pkg/modbusclient"
	"github.com/gibzwein/RCE-reader/pkg/mqtt"
)

// NewIndicator builds the indicator selected by conf.IndicatorType. publisher may be nil
// unless the mqtt indicator is selected.
func NewIndicator(conf *config.CliConfig, publisher mqtt.Publisher) (indicator.Indicator, error) {
	switch types.IndicatorType(conf.IndicatorType) {
	case types.IndicatorTypeDummy, "":
		return dummy.New(), nil
	case types.IndicatorTypeModbus:
		if conf.ModbusAddress == "" {
			return nil, fmt.Errorf("modbus indicator requires ModbusAddress")
		}
		client := modbusclient.DialTCP(conf.ModbusAddress, byte(conf.ModbusSlaveID))
		return modbusled.New(client, uint16(conf.ModbusRegister), uint16(conf.ModbusFullScale)), nil
	case types.IndicatorTypeMQTT:
		if publisher == nil {
			return nil, fmt.Errorf("mqtt indicator requires MQTTAddress")
		}
		return mqttled.New(publisher, conf.MQTTPrefix), nil
	}
	return nil, fmt.Errorf("unknown indicator type %q", conf.IndicatorType)
}
