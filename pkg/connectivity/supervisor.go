package connectivity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gibzwein/RCE-reader/pkg/localtime"
	"github.com/sirupsen/logrus"
)

var ErrTimeout = errors.New("timeout waiting for network link")

type Credentials struct {
	SSID     string
	Password string
}

// Link is the network interface the supervisor drives. Errors returned from SetActive and
// Connect are treated as transient link faults.
type Link interface {
	SetActive(active bool) error
	Connect(ssid, password string) error
	IsConnected() bool
}

type ClockSyncer interface {
	Sync(ctx context.Context) error
}

type StatusReporter interface {
	Status(msg string)
}

type Supervisor struct {
	link     Link
	clock    ClockSyncer
	reporter StatusReporter

	PollInterval time.Duration
	SettleDelay  time.Duration
	FaultDelay   time.Duration
	ResetDelay   time.Duration
	StatusDelay  time.Duration
	sleep        localtime.SleepFunc
}

func New(link Link, clock ClockSyncer, reporter StatusReporter) *Supervisor {
	return &Supervisor{
		link:         link,
		clock:        clock,
		reporter:     reporter,
		PollInterval: 500 * time.Millisecond,
		SettleDelay:  time.Second,
		FaultDelay:   5 * time.Second,
		ResetDelay:   time.Second,
		StatusDelay:  time.Second,
		sleep:        localtime.Sleep,
	}
}

func (s *Supervisor) Connected() bool {
	return s.link.IsConnected()
}

// EnsureConnected returns immediately when the link is up. Otherwise it associates and waits up
// to timeout for the link. A timeout is returned to the caller as ErrTimeout. Link faults reset
// the radio and restart the sequence until it either connects, times out or ctx is done.
func (s *Supervisor) EnsureConnected(ctx context.Context, creds Credentials, timeout time.Duration) error {
	for {
		if s.link.IsConnected() {
			return nil
		}

		err := s.associate(ctx, creds, timeout)
		switch {
		case err == nil:
			s.onConnected(ctx)
			return nil
		case errors.Is(err, ErrTimeout):
			logrus.WithField("timeout", timeout).Warn("failed to connect to network")
			s.status("WiFi Failed")
			_ = s.sleep(ctx, s.StatusDelay)
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		}

		logrus.Errorf("link fault: %s", err)
		s.status("WiFi Error")
		if err := s.sleep(ctx, s.FaultDelay); err != nil {
			return err
		}
		if err := s.link.SetActive(false); err != nil {
			logrus.Errorf("error deactivating link: %s", err)
		}
		if err := s.sleep(ctx, s.ResetDelay); err != nil {
			return err
		}
	}
}

func (s *Supervisor) associate(ctx context.Context, creds Credentials, timeout time.Duration) error {
	logrus.WithField("ssid", creds.SSID).Info("connecting to network")
	if err := s.link.SetActive(true); err != nil {
		return fmt.Errorf("error activating link: %w", err)
	}
	if err := s.sleep(ctx, s.SettleDelay); err != nil {
		return err
	}
	if err := s.link.Connect(creds.SSID, creds.Password); err != nil {
		return fmt.Errorf("error connecting to %s: %w", creds.SSID, err)
	}
	s.status("Connecting WiFi")

	polls := int(timeout / s.PollInterval)
	for i := 0; i < polls && !s.link.IsConnected(); i++ {
		if err := s.sleep(ctx, s.PollInterval); err != nil {
			return err
		}
	}
	if !s.link.IsConnected() {
		return ErrTimeout
	}
	return nil
}

func (s *Supervisor) onConnected(ctx context.Context) {
	logrus.Info("network connected")
	if s.clock != nil {
		if err := s.clock.Sync(ctx); err != nil {
			logrus.Errorf("error syncing clock: %s", err)
		}
	}
	s.status("WiFi Connected")
	_ = s.sleep(ctx, s.StatusDelay)
}

func (s *Supervisor) status(msg string) {
	if s.reporter != nil {
		s.reporter.Status(msg)
	}
}
