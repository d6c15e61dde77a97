package indicator

import (
	"github.com/gibzwein/RCE-reader/pkg/tier"
)

// Indicator is a single RGB light showing the current tier.
type Indicator interface {
	SetColor(c tier.RGB) error
}

// Scale255 maps an 8 bit colour channel onto a register range 0..full.
func Scale255(v uint8, full uint16) uint16 {
	return uint16(uint32(v) * uint32(full) / 255)
}
