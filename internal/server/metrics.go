package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric collectors, registered with the default prometheus registry.
//
//nolint:gochecknoglobals // promauto collectors are registered once per process.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfocus_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carbonfocus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"method", "route"},
	)

	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonfocus_calculations_total",
			Help: "Total number of footprint calculations by country and outcome",
		},
		[]string{"country", "status"},
	)

	FootprintTonnes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carbonfocus_footprint_tonnes",
			Help:    "Distribution of calculated annual footprints in tonnes CO2",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carbonfocus_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
