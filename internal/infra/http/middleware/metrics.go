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
			Name: "crm_leads_captured_total",
			Help: "Total number of leads captured from public forms",
		},
		[]string{"source"},
	)

	leadsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_converted_total",
			Help: "Total number of leads converted into contacts",
		},
	)

	stageChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_stage_changes_total",
			Help: "Total number of pipeline stage changes",
		},
		[]string{"entity", "to"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_rate_limited_total",
			Help: "Total number of requests rejected by the lead form limiter",
		},
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

// routePattern keeps label cardinality bounded: /api/admin/leads/{id} instead of each UUID.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordLeadCaptured(source string) {
	leadsCaptured.WithLabelValues(source).Inc()
}

func RecordLeadConverted() {
	leadsConverted.Inc()
}

func RecordStageChange(entity, to string) {
	stageChanges.WithLabelValues(entity, to).Inc()
}

func RecordRateLimited() {
	rateLimited.Inc()
}
