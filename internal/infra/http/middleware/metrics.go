package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads accepted by the submit endpoints",
		},
		[]string{"kind"},
	)

	leadSyncAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_sync_attempts_total",
			Help: "Total number of lead sync attempts per sink",
		},
		[]string{"sink", "outcome"},
	)

	leadSyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_sync_duration_seconds",
			Help:    "Duration of lead sync attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sink"},
	)

	sinksDisabled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_sync_sinks_disabled_total",
			Help: "Sinks disabled at startup because of invalid configuration",
		},
		[]string{"sink"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics labels requests by chi route pattern so ids in the path don't
// create new series. Unrouted requests share one label.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func RecordLeadCaptured(kind string) {
	leadsCaptured.WithLabelValues(kind).Inc()
}

func RecordSinkDisabled(sink string) {
	sinksDisabled.WithLabelValues(sink).Inc()
}

// SinkMetrics feeds the sync dispatcher's per-attempt observations into
// Prometheus.
type SinkMetrics struct{}

func (SinkMetrics) ObserveSinkAttempt(sink, outcome string, elapsed time.Duration) {
	leadSyncAttempts.WithLabelValues(sink, outcome).Inc()
	leadSyncDuration.WithLabelValues(sink).Observe(elapsed.Seconds())
}
