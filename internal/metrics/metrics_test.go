package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/airfinder/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.Searches.WithLabelValues("success").Inc()
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Searches.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DistanceCacheHits.WithLabelValues("hit")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.DistanceCacheHits.WithLabelValues("miss")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() { metrics.NewMetrics(reg) })
}
