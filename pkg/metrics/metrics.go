// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package metrics exposes Prometheus instrumentation for the proxy.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts inbound requests by method, path and response status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flyd_proxy_requests_total",
		Help: "Inbound requests handled by the proxy.",
	}, []string{"method", "path", "status"})

	// UpstreamDuration observes round-trip time of calls to the Machines API.
	// The upstream status code is recorded here even though it is not relayed
	// to callers.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flyd_proxy_upstream_duration_seconds",
		Help:    "Round-trip latency of upstream Machines API calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"host", "status"})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
