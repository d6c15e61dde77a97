package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gibzwein/RCE-reader/pkg/api/v1/config"
	"github.com/gibzwein/RCE-reader/pkg/app"
	"github.com/gibzwein/RCE-reader/pkg/connectivity"
	"github.com/gibzwein/RCE-reader/pkg/display"
	"github.com/gibzwein/RCE-reader/pkg/feed"
	"github.com/gibzwein/RCE-reader/pkg/localtime"
	"github.com/gibzwein/RCE-reader/pkg/metrics"
	"github.com/gibzwein/RCE-reader/pkg/mqtt"
	"github.com/gibzwein/RCE-reader/pkg/version"
	"github.com/koding/multiconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()
	err := Run(ctx)
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	config := &config.CliConfig{}
	err := multiconfig.New().Load(config)
	if err != nil {
		return err
	}
	lvl, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("error setting logrus loglevel: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.Infof("rce-reader %s", version.Build)

	err = config.LoadCredentials()
	if err != nil {
		return err
	}
	err = config.Validate()
	if err != nil {
		return err
	}

	wg := &sync.WaitGroup{}
	var publisher mqtt.Publisher
	if config.MQTTAddress != "" {
		broker, err := mqtt.Start(ctx, wg, config.MQTTAddress)
		if err != nil {
			return fmt.Errorf("error starting mqtt broker: %w", err)
		}
		publisher = broker
	}

	ind, err := app.NewIndicator(config, publisher)
	if err != nil {
		return err
	}

	console := display.NewConsole()
	clock := localtime.NewNTPClock(config.NTPServer)
	supervisor := connectivity.New(connectivity.NewHostLink(), clock, display.NewScreen(console))
	client := feed.New(config.Server, config.FetchAttempts, config.FetchBackoff())

	app := app.New(config, clock, supervisor, client, console, ind)

	reg := prometheus.NewRegistry()
	app.AddReporter(metrics.New(reg))
	if config.MetricsAddress != "" {
		metrics.Serve(ctx, wg, config.MetricsAddress, reg)
	}
	if publisher != nil {
		app.AddReporter(mqtt.NewStateReporter(publisher, config.MQTTPrefix))
	}

	app.Start(ctx)

	app.Wait()
	wg.Wait()
	return nil
}
