package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Searches          *prometheus.CounterVec
	DataSourceErrors  *prometheus.CounterVec
	RequestSeconds    *prometheus.HistogramVec
	AirportsReturned  prometheus.Histogram
	DistanceCacheHits *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Searches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "airfinder_searches_total",
			Help: "Total number of proximity searches by outcome.",
		}, []string{"status"}),
		DataSourceErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "airfinder_data_source_errors_total",
			Help: "Total number of failed airport data source queries.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airfinder_data_source_request_duration_seconds",
			Help:    "Duration of bounding box queries to the airport data source.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		AirportsReturned: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "airfinder_airports_returned",
			Help:    "Number of airports returned per search.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		DistanceCacheHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "airfinder_distance_cache_lookups_total",
			Help: "Distance memo table lookups by result (hit or miss).",
		}, []string{"result"}),
	}
}

// CacheLookup records a distance memo table lookup.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.DistanceCacheHits.WithLabelValues(result).Inc()
}
