package middleware

import (
	"net/http"
	"strconv"
	"time"

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

	codesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_codes_issued_total",
			Help: "Total number of verification codes issued",
		},
		[]string{"channel"},
	)

	codesVerified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verification_codes_verified_total",
			Help: "Total number of successful verifications",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"tier"},
	)

	leadsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_delivered_total",
			Help: "Total number of lead delivery attempts",
		},
		[]string{"method", "status"},
	)

	consistencyViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_consistency_violations_total",
			Help: "Delivered leads found without a matching audit row",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
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

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordCodeIssued(channel string) {
	codesIssued.WithLabelValues(channel).Inc()
}

func RecordCodeVerified() {
	codesVerified.Inc()
}

func RecordLeadCreated(tier string) {
	leadsCreated.WithLabelValues(tier).Inc()
}

func RecordDelivery(method, status string) {
	leadsDelivered.WithLabelValues(method, status).Inc()
}

func RecordConsistencyViolation() {
	consistencyViolations.Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
