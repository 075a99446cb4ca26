package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets covering fast cache hits through slow database scans
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// Registry is the custom registry exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database operation metrics
	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	MentorshipRequestsSubmitted = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_requests_submitted_total",
			Help: "Total number of mentorship requests submitted",
		},
	)

	MentorshipRequestTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_request_transitions_total",
			Help: "Total number of request status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	ExpiredRequestsSwept = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_requests_expired_total",
			Help: "Total number of pending requests flipped to expired by the sweeper",
		},
	)

	MatchQueries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_match_queries_total",
			Help: "Total number of mentor match computations",
		},
		[]string{"outcome"},
	)

	MatchResultCount = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "diaspora_bridge_match_results",
			Help:    "Number of mentors returned per match query",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	MessagesSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_messages_sent_total",
			Help: "Total number of chat messages stored",
		},
		[]string{"sender_type"},
	)

	MeetingsScheduled = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_meetings_total",
			Help: "Total number of meetings by status transition",
		},
		[]string{"status"},
	)

	NotificationsGenerated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diaspora_bridge_notifications_total",
			Help: "Total number of notification payloads generated",
		},
		[]string{"template"},
	)

	// Infrastructure metrics
	GoroutineCount = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "go_runtime_goroutines",
			Help: "Number of running goroutines",
		},
	)
)

// Init registers standard process and Go runtime collectors
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics starts periodic collection of runtime gauges
func RecordInfrastructureMetrics() {
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}()
}

// MeasureDuration returns the elapsed time since start in seconds
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
