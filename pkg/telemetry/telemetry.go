// Package telemetry exposes request metrics via Prometheus. Collectors are
// registered once at package init and scraped from the ops endpoint.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minihttpd_requests_total",
			Help: "Requests served, by method and response status.",
		},
		[]string{"method", "status"},
	)

	requestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minihttpd_request_duration_seconds",
			Help:    "Wall time of the per-connection pipeline.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	openConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minihttpd_open_connections",
			Help: "Connections currently owned by a worker.",
		},
	)

	rejectedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minihttpd_rejected_requests_total",
			Help: "Connections dropped before a response was written.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestSeconds, openConnections, rejectedRequests)
}

// ObserveRequest records one served request.
func ObserveRequest(method string, status int, dur time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestSeconds.WithLabelValues(method).Observe(dur.Seconds())
}

// ObserveRejected records a connection dropped without a response, with a
// short reason label ("malformed", "ratelimited", "write_failed").
func ObserveRejected(reason string) {
	rejectedRequests.WithLabelValues(reason).Inc()
}

// ConnOpened and ConnClosed track the open-connection gauge.
func ConnOpened() { openConnections.Inc() }
func ConnClosed() { openConnections.Dec() }

// Handler returns the scrape handler for the ops endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
