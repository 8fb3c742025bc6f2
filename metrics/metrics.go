// Package metrics holds the Prometheus collectors shared by the store and HTTP layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruit_store_operations_total",
			Help: "Total number of backing store operations",
		},
		[]string{"backend", "op", "result"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recruit_store_operation_duration_seconds",
			Help:    "Duration of backing store operations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"backend", "op"},
	)

	StorePayloadBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recruit_store_payload_bytes",
			Help: "Size of the last payload written per key",
		},
		[]string{"backend", "key"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruit_http_requests_total",
			Help: "Total number of API requests by entity kind and outcome",
		},
		[]string{"kind", "method", "code"},
	)
)
