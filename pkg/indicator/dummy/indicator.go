package dummy

import (
	"sync"

	"github.com/gibzwein/RCE-reader/pkg/tier"
	"github.com/sirupsen/logrus"
)

// Dummy logs colour changes and remembers the last one.
type Dummy struct {
	color *tier.RGB
	sync.Mutex
}

func New() *Dummy {
	return &Dummy{}
}

func (d *Dummy) SetColor(c tier.RGB) error {
	logrus.Info("dummy: SetColor: ", c)
	d.Lock()
	d.color = &c
	d.Unlock()
	return nil
}

// Color returns the last colour set, if any.
func (d *Dummy) Color() (tier.RGB, bool) {
	d.Lock()
	defer d.Unlock()
	if d.color == nil {
		return tier.RGB{}, false
	}
	return *d.color, true
}
