package tier

import (
	"fmt"

	"github.com/gibzwein/RCE-reader/pkg/price"
)

type Tier int

const (
	Negative Tier = iota
	Low
	Mid
	High
)

const (
	lowBand  = 0.33
	highBand = 0.66
)

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

var (
	Blue   = RGB{0, 0, 255}
	Green  = RGB{0, 255, 0}
	Yellow = RGB{255, 255, 0}
	Red    = RGB{255, 0, 0}
)

// Classify places price within the day's range. Negative prices always classify as Negative.
// A zero range puts every non-negative price in High.
func Classify(p float64, stats price.Stats) Tier {
	spread := stats.Max - stats.Min
	low := stats.Min + spread*lowBand
	high := stats.Min + spread*highBand
	switch {
	case p < 0:
		return Negative
	case p < low:
		return Low
	case p < high:
		return Mid
	default:
		return High
	}
}

func (t Tier) String() string {
	switch t {
	case Negative:
		return "negative"
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) Color() RGB {
	switch t {
	case Negative:
		return Blue
	case Low:
		return Green
	case Mid:
		return Yellow
	}
	return Red
}

// Letter is the single glyph drawn next to the price on the display.
func (t Tier) Letter() string {
	switch t {
	case Negative:
		return "B"
	case Low:
		return "G"
	case Mid:
		return "Y"
	}
	return "R"
}
