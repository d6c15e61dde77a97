package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gibzwein/RCE-reader/pkg/api/v1/config"
	"github.com/gibzwein/RCE-reader/pkg/connectivity"
	"github.com/gibzwein/RCE-reader/pkg/display"
	"github.com/gibzwein/RCE-reader/pkg/fault"
	"github.com/gibzwein/RCE-reader/pkg/indicator"
	"github.com/gibzwein/RCE-reader/pkg/localtime"
	"github.com/gibzwein/RCE-reader/pkg/price"
	"github.com/gibzwein/RCE-reader/pkg/state"
	"github.com/gibzwein/RCE-reader/pkg/tier"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoData     = errors.New("no data from feed")
	ErrNoHourData = errors.New("no data for current hour")
)

// heartbeat is the longest time the loop goes without re-checking the hour.
const heartbeat = 60 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context, date string) (string, error)
}

type Supervisor interface {
	Connected() bool
	EnsureConnected(ctx context.Context, creds connectivity.Credentials, timeout time.Duration) error
}

// Reporter receives every successful refresh. Reporters that also implement
// FailureReporter are told about failed ones.
type Reporter interface {
	Report(s state.Snapshot)
}

type FailureReporter interface {
	Failed(reason string)
}

type App struct {
	wg         *sync.WaitGroup
	config     *config.CliConfig
	clock      localtime.Clock
	times      *localtime.Service
	supervisor Supervisor
	feed       Fetcher
	screen     *display.Screen
	indicator  indicator.Indicator
	reporters  []Reporter
	faults     fault.Active

	IdleInterval time.Duration
	sleep        localtime.SleepFunc

	mu           sync.RWMutex
	state        State
	refresh      RefreshState
	onTransition func(from, to State)
}

func New(conf *config.CliConfig, clock localtime.Clock, supervisor Supervisor, feed Fetcher, d display.Display, ind indicator.Indicator) *App {
	return &App{
		wg:           &sync.WaitGroup{},
		config:       conf,
		clock:        clock,
		times:        localtime.New(clock, conf.TimezoneOffset, conf.DaylightSavingOffset),
		supervisor:   supervisor,
		feed:         feed,
		screen:       display.NewScreen(d),
		indicator:    ind,
		IdleInterval: time.Second,
		sleep:        localtime.Sleep,
		state:        StateIdle,
		refresh:      RefreshState{LastObservedHour: -1},
	}
}

func (a *App) AddReporter(r Reporter) {
	a.reporters = append(a.reporters, r)
}

func (a *App) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.refreshLoop(ctx)
}

func (a *App) Wait() {
	a.wg.Wait()
}

func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *App) Refresh() RefreshState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.refresh
}

func (a *App) Faults() []string {
	return a.faults.List()
}

func (a *App) refreshLoop(ctx context.Context) {
	defer a.wg.Done()
	logrus.WithFields(logrus.Fields{
		"server":    a.config.Server,
		"indicator": a.config.IndicatorType,
	}).Info("starting refresh loop")
	for {
		a.Tick(ctx)
		if err := a.sleep(ctx, a.IdleInterval); err != nil {
			logrus.Info("refresh loop stopped")
			return
		}
	}
}

// Tick runs one iteration of the refresh loop.
func (a *App) Tick(ctx context.Context) {
	if !a.supervisor.Connected() {
		a.setState(StateConnecting)
		ssid, password := a.config.Credentials()
		err := a.supervisor.EnsureConnected(ctx, connectivity.Credentials{SSID: ssid, Password: password}, a.config.ConnectTimeout())
		a.setState(StateIdle)
		if err != nil {
			logrus.Warnf("not connected: %s", err)
			return
		}
	}

	now := a.clock.Now()
	local := a.times.At(now)

	a.mu.Lock()
	last := a.refresh
	if local.Hour == last.LastObservedHour && now.Sub(last.LastRefresh) <= heartbeat {
		a.mu.Unlock()
		return
	}
	a.refresh.LastRefresh = now
	hourChanged := local.Hour != last.LastObservedHour
	if hourChanged {
		a.refresh.LastObservedHour = local.Hour
	}
	a.mu.Unlock()

	if !hourChanged {
		logrus.WithField("next", untilNextHour(now).Round(time.Second)).Debug("hour not changed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"date": local.Date(),
		"hour": local.Hour,
	}).Info("hour changed, refreshing prices")
	a.refreshPrices(ctx, now, local)
}

func (a *App) refreshPrices(ctx context.Context, now time.Time, local localtime.LocalTime) {
	a.setState(StateFetching)
	a.screen.Status("Fetching data")

	snapshot, err := a.evaluate(ctx, now, local)
	if err != nil {
		a.fail(err)
		a.setState(StateIdle)
		return
	}

	a.setState(StateDisplaying)
	a.show(snapshot)
	a.setState(StateIdle)
}

func (a *App) evaluate(ctx context.Context, now time.Time, local localtime.LocalTime) (state.Snapshot, error) {
	raw, err := a.feed.Fetch(ctx, local.Date())
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	records := price.Parse(raw)
	stats, err := price.Aggregate(records)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	logrus.WithFields(logrus.Fields{
		"records": len(records),
		"average": stats.Average,
		"min":     stats.Min,
		"max":     stats.Max,
	}).Debug("parsed prices")

	record, ok := price.SelectHour(records, local.Hour, a.config.HourLabelOffset)
	if !ok {
		return state.Snapshot{}, fmt.Errorf("%w: hour %d in %s", ErrNoHourData, local.Hour, local.Date())
	}

	return state.Snapshot{
		Time:    now,
		Date:    local.Date(),
		Hour:    local.Hour,
		Price:   record.Price,
		Stats:   stats,
		Tier:    tier.Classify(record.Price, stats),
		Records: len(records),
	}, nil
}

func (a *App) show(s state.Snapshot) {
	if cleared := a.faults.Clear(); len(cleared) > 0 {
		logrus.Infof("recovered from: %s", strings.Join(cleared, ", "))
	}

	logrus.WithFields(logrus.Fields{
		"hour":  s.Hour,
		"price": s.Price,
		"tier":  s.Tier,
		"color": s.Color(),
	}).Info("current price")

	a.screen.Price(s.Price, s.Tier)
	if err := a.indicator.SetColor(s.Color()); err != nil {
		logrus.Errorf("error setting indicator color: %s", err)
	}
	for _, r := range a.reporters {
		r.Report(s)
	}
}

func (a *App) fail(err error) {
	a.setState(StateError)

	reason, status := "error", "Error"
	switch {
	case errors.Is(err, ErrNoData):
		reason, status = "no_data", "No data from PSE"
	case errors.Is(err, ErrNoHourData):
		reason, status = "no_hour_data", "No data for hour"
	}

	if a.faults.Raise(reason) {
		logrus.Errorf("refresh failed: %s", err)
	} else {
		logrus.Warnf("refresh failed again: %s", err)
	}
	a.screen.Status(status)
	for _, r := range a.reporters {
		if f, ok := r.(FailureReporter); ok {
			f.Failed(reason)
		}
	}
}

func (a *App) setState(s State) {
	a.mu.Lock()
	from := a.state
	a.state = s
	hook := a.onTransition
	a.mu.Unlock()

	if from == s {
		return
	}
	logrus.Debugf("state %s -> %s", from, s)
	if hook != nil {
		hook(from, s)
	}
}
