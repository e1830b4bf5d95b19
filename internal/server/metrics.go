package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the API's prometheus collectors.
type Metrics struct {
	requests     *prometheus.CounterVec
	rowsGrouped  prometheus.Counter
	parseSeconds prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groupr_requests_total",
				Help: "HTTP requests by route pattern and status code",
			},
			[]string{"route", "code"},
		),
		rowsGrouped: f.NewCounter(
			prometheus.CounterOpts{
				Name: "groupr_rows_grouped_total",
				Help: "Rows placed into groups",
			},
		),
		parseSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "groupr_parse_seconds",
				Help:    "Time spent parsing uploaded tables",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
	}
}
