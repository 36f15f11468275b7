// Package metrics provides Prometheus instrumentation for the Village
// backend: request counters by route and status, plus counters for the
// discovery and RSVP hot paths.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status code.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "village_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// DiscoveryQueriesTotal counts discovery browses, labeled by active tab.
	DiscoveryQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "village_discovery_queries_total",
		Help: "Total number of discovery filter queries",
	}, []string{"tab"})

	// RSVPsTotal counts RSVP transitions by resulting status.
	RSVPsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "village_rsvps_total",
		Help: "Total number of RSVP status transitions",
	}, []string{"status"})

	// PendingCountRefreshes counts background pending-count cache refreshes.
	PendingCountRefreshes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "village_pending_count_refreshes_total",
		Help: "Total number of pending-count cache refresh passes",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		DiscoveryQueriesTotal,
		RSVPsTotal,
		PendingCountRefreshes,
	)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
