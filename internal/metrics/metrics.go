// internal/metrics/metrics.go
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
		[]string{"method", "endpoint"},
	)

	// Database metrics
	dbConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections in use",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Business metrics
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Total number of stored submissions",
		},
		[]string{"type"}, // campaign, organization
	)

	slugRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_slug_retries_total",
			Help: "Slug reservations retried after losing a uniqueness race",
		},
	)

	crmSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_crm_sync_total",
			Help: "CRM mirror attempts",
		},
		[]string{"status"}, // success, partial, failure, skipped
	)

	otpGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_otp_generated_total",
			Help: "Total number of OTP codes generated",
		},
	)

	otpVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_otp_verified_total",
			Help: "Total number of OTP verifications",
		},
		[]string{"status"}, // success, failure
	)

	sharesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_shares_total",
			Help: "Share messages by channel and outcome",
		},
		[]string{"channel", "status"},
	)
)

// PrometheusMiddleware records request metrics labelled by the chi route
// pattern so path parameters such as slugs do not explode label cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip metrics endpoint itself
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		endpoint := routePattern(r)
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, endpoint, statusCode).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, endpoint).Observe(float64(wrapped.size))
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

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// RecordSubmission records a stored submission of the given type.
func RecordSubmission(kind string) {
	submissionsTotal.WithLabelValues(kind).Inc()
}

// RecordSlugRetry records one lost reservation race.
func RecordSlugRetry() {
	slugRetriesTotal.Inc()
}

// RecordCRMSync records the outcome of a CRM mirror attempt.
func RecordCRMSync(status string) {
	crmSyncTotal.WithLabelValues(status).Inc()
}

// RecordOTPGenerated records OTP generation
func RecordOTPGenerated() {
	otpGeneratedTotal.Inc()
}

// RecordOTPVerified records OTP verification
func RecordOTPVerified(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	otpVerifiedTotal.WithLabelValues(status).Inc()
}

// RecordShare records one share channel outcome.
func RecordShare(channel string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	sharesTotal.WithLabelValues(channel, status).Inc()
}

// UpdateDBConnections copies pool statistics into the connection gauges.
func UpdateDBConnections(stats sql.DBStats) {
	dbConnectionsInUse.Set(float64(stats.InUse))
	dbConnectionsIdle.Set(float64(stats.Idle))
}
