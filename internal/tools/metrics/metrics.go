package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IncomingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_planner_requests_total",
			Help: "Total number of handled requests",
		},
		[]string{"method", "route", "code"},
	)

	IncomingRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travel_planner_request_duration_seconds",
			Help:    "Duration of handled requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	OutgoingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_planner_outgoing_requests_total",
			Help: "Total number of requests sent to external services",
		},
		[]string{"request", "code"},
	)

	OutgoingRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travel_planner_outgoing_request_duration_seconds",
			Help:    "Duration of requests sent to external services",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"request"},
	)

	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_planner_searches_total",
			Help: "Inventory searches by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_planner_location_resolutions_total",
			Help: "Place name resolutions by outcome",
		},
		[]string{"outcome"},
	)

	Bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_planner_bookings_total",
			Help: "Hotel booking submissions by outcome",
		},
		[]string{"outcome"},
	)
)
