package health

import "github.com/prometheus/client_golang/prometheus"

// Request metrics are labelled by route pattern, never by raw path
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop_admin",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of admin API requests",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_admin",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Admin API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shop_admin",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		},
	)
)
