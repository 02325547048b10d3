package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pawmart_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "pawmart_http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// AuthzDecisions counts authorization outcomes by decision and the rule
	// that produced it.
	AuthzDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pawmart_authz_decisions_total", Help: "Authorization decisions by outcome and rule."},
		[]string{"decision", "rule"},
	)

	// ListingCache counts public listing cache lookups by result: hit, miss,
	// stale (stored under an older generation) or error.
	ListingCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pawmart_listing_cache_total", Help: "Public listing cache lookups by result."},
		[]string{"result"},
	)

	// EventsPublished counts domain events by type and status (ok, error).
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pawmart_events_published_total", Help: "Domain events published by type and status."},
		[]string{"type", "status"},
	)
)

// RegisterDefault registers collectors to Registry. It is safe to call more
// than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(AuthzDecisions)
		Registry.MustRegister(ListingCache)
		Registry.MustRegister(EventsPublished)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
