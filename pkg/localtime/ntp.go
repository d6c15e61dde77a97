package localtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/sirupsen/logrus"
)

// NTPClock is the host clock corrected by the offset measured at the last Sync.
type NTPClock struct {
	server  string
	timeout time.Duration
	offset  time.Duration
	synced  bool
	mutex   sync.RWMutex

	query func(host string, opt ntp.QueryOptions) (*ntp.Response, error)
}

func NewNTPClock(server string) *NTPClock {
	return &NTPClock{
		server:  server,
		timeout: 5 * time.Second,
		query:   ntp.QueryWithOptions,
	}
}

func (c *NTPClock) Now() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return time.Now().Add(c.offset).UTC()
}

func (c *NTPClock) Synced() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.synced
}

func (c *NTPClock) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := c.query(c.server, ntp.QueryOptions{Timeout: c.timeout})
	if err != nil {
		return fmt.Errorf("error querying ntp server %s: %w", c.server, err)
	}
	if err := resp.Validate(); err != nil {
		return fmt.Errorf("invalid ntp response from %s: %w", c.server, err)
	}

	c.mutex.Lock()
	c.offset = resp.ClockOffset
	c.synced = true
	c.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"server": c.server,
		"offset": resp.ClockOffset,
		"rtt":    resp.RTT,
	}).Info("clock synchronized")
	return nil
}
