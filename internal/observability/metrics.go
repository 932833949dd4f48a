// Package observability declares the Prometheus collectors for the API.
// Collectors are registered at import time via promauto; the /metrics route
// in cmd/api exposes them.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel_buddy", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travel_buddy",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ReservationOutcomes counts reservation lifecycle decisions by operation
	// (create, approve, reject, withdraw) and outcome (ok, conflict,
	// capacity_exceeded, error).
	ReservationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel_buddy", Name: "reservation_outcomes_total", Help: "Reservation operations by outcome"},
		[]string{"operation", "outcome"},
	)
)
