package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/gibzwein/RCE-reader/pkg/price"
	"github.com/gibzwein/RCE-reader/pkg/state"
	"github.com/gibzwein/RCE-reader/pkg/tier"
)

func TestReport(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Report(state.Snapshot{
		Time:  time.Unix(1704110400, 0),
		Price: 301.7,
		Stats: price.Stats{Min: -5, Max: 400, Average: 200},
		Tier:  tier.Mid,
	})
	m.Failed("no_data")
	m.Failed("no_data")

	assert.Equal(t, 301.7, testutil.ToFloat64(m.price))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tier))
	assert.Equal(t, -5.0, testutil.ToFloat64(m.stats.WithLabelValues("min")))
	assert.Equal(t, 400.0, testutil.ToFloat64(m.stats.WithLabelValues("max")))
	assert.Equal(t, 1704110400.0, testutil.ToFloat64(m.lastRefresh))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshes.WithLabelValues("no_data")))
}
