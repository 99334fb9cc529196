package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProjectListSource counts project list responses by data source
	// (vercel, mock, fallback).
	ProjectListSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_project_list_total",
			Help: "Project list responses by data source",
		},
		[]string{"source"},
	)

	// UpstreamRequests counts Vercel API calls by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_upstream_requests_total",
			Help: "Vercel API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_upstream_request_duration_seconds",
			Help:    "Vercel API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	PingProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_ping_probes_total",
			Help: "Domain latency probes by outcome",
		},
		[]string{"outcome"},
	)

	PingLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_ping_latency_seconds",
			Help:    "Observed latency of successful domain probes",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// RegisterPingQueueMetrics exposes the number of queued latency probes.
func RegisterPingQueueMetrics(depth func() int) {
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dashboard_ping_queue_depth",
			Help: "Number of latency probes waiting for the worker",
		}, func() float64 {
			return float64(depth())
		}),
	)
}
