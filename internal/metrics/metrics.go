// Package metrics defines the Prometheus instruments exposed on /metrics.
// promauto registers everything against the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path, and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hearth_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures server response time per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hearth_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// CollectionSize tracks the current length of each bounded collection.
	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hearth_collection_size",
			Help: "Current number of retained entries per collection",
		},
		[]string{"collection"},
	)

	// SweptRooms counts active-room entries expired by the sweep.
	SweptRooms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearth_swept_rooms_total",
		Help: "Active-room entries removed by the periodic sweep",
	})

	// SweptVisitors counts visitor-presence entries expired by the sweep.
	SweptVisitors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearth_swept_visitors_total",
		Help: "Visitor-presence entries removed by the periodic sweep",
	})
)
