package types

type IndicatorType string

var IndicatorTypeDummy = IndicatorType("dummy")
var IndicatorTypeModbus = IndicatorType("modbus")
var IndicatorTypeMQTT = IndicatorType("mqtt")
