// Package metrics 定义服务暴露给Prometheus的指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "robodesk"

var (
	HttpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HttpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	GatewayErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Failed backend gateway operations.",
	}, []string{"table", "op"})

	SnapshotFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_fallbacks_total",
		Help:      "Reads served from the last known good snapshot.",
	}, []string{"table"})

	HubDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hub_dropped_changes_total",
		Help:      "Change events dropped because a subscriber was too slow.",
	})

	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "robot_downloads_total",
		Help:      "Robot files served.",
	}, []string{"robot"})
)
