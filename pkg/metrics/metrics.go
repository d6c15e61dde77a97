package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/gibzwein/RCE-reader/pkg/state"
)

type Metrics struct {
	price       prometheus.Gauge
	stats       *prometheus.GaugeVec
	tier        prometheus.Gauge
	lastRefresh prometheus.Gauge
	refreshes   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		price: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rce_price_current",
			Help: "Price for the current hour as published by the feed",
		}),
		stats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rce_price_day",
			Help: "Daily price statistics",
		}, []string{"stat"}),
		tier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rce_price_tier",
			Help: "Current tier: 0 negative, 1 low, 2 mid, 3 high",
		}),
		lastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rce_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rce_refresh_total",
			Help: "Refresh cycles by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.price, m.stats, m.tier, m.lastRefresh, m.refreshes)
	return m
}

func (m *Metrics) Report(s state.Snapshot) {
	m.price.Set(s.Price)
	m.stats.WithLabelValues("min").Set(s.Stats.Min)
	m.stats.WithLabelValues("max").Set(s.Stats.Max)
	m.stats.WithLabelValues("average").Set(s.Stats.Average)
	m.tier.Set(float64(s.Tier))
	m.lastRefresh.Set(float64(s.Time.Unix()))
	m.refreshes.WithLabelValues("ok").Inc()
}

// Failed counts a refresh that ended in error. reason is a short fixed label.
func (m *Metrics) Failed(reason string) {
	m.refreshes.WithLabelValues(reason).Inc()
}

// Serve exposes the registry on address until ctx is done.
func Serve(ctx context.Context, wg *sync.WaitGroup, address string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		logrus.WithField("address", address).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("metrics server: %s", err)
		}
	}()
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("error shutting down metrics server: %s", err)
		}
	}()
}
