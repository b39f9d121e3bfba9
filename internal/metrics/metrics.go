package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "community_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path", "status"},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "community_messages_sent_total",
			Help: "Total direct messages persisted",
		},
	)

	// Fan-out metrics, labelled by trigger kind (message, comment, post)
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_notifications_created_total",
			Help: "Notifications written by the fan-out",
		},
		[]string{"kind"},
	)

	FanoutFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_fanout_failures_total",
			Help: "Fan-out steps that failed and were discarded",
		},
		[]string{"kind"},
	)

	FanoutDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_fanout_dropped_total",
			Help: "Fan-out events dropped because the queue was full or closed",
		},
		[]string{"kind"},
	)
)
