package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"partner-portal/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters by principal kind
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_total",
			Help: "Total number of login attempts by principal kind",
		},
		[]string{"principal"}, // "partner" or "admin"
	)

	// Registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_register_total",
			Help: "Total number of partner registrations",
		},
	)

	// Lifecycle transition counter
	TransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_lifecycle_transitions_total",
			Help: "Total number of partner lifecycle transitions",
		},
		[]string{"transition"}, // "approve", "reject", "suspend"
	)

	// Message counter by sender kind
	MessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_messages_sent_total",
			Help: "Total number of messages appended to the ledger",
		},
		[]string{"sender"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "invalid_token", "login_failure", "db_error" etc.
	)

	// Auth operation counter
	AuthOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_operations_total",
			Help: "Total number of authentication operations",
		},
		[]string{"operation"}, // "profile_access", "profile_update", "password_change", etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// Pending applications
	PendingApplicationsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_pending_applications",
			Help: "Number of partner applications awaiting review",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portal_info",
			Help: "Information about the partner portal service",
		},
		[]string{"version", "environment"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(TransitionCounter)
	prometheus.MustRegister(MessageCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(AuthOperationCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(PendingApplicationsGauge)
	prometheus.MustRegister(InfoGauge)
}

// InitMetrics sets the service info gauge from configuration
func InitMetrics(cfg *config.Config) {
	InfoGauge.With(prometheus.Labels{
		"version":     "1.0.0",
		"environment": cfg.Server.Env,
	}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordAuthOperation records an authentication operation by type
func RecordAuthOperation(operation string) {
	AuthOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordLogin records a login attempt by principal kind
func RecordLogin(principal string) {
	LoginCounter.With(prometheus.Labels{"principal": principal}).Inc()
}

// RecordTransition records a partner lifecycle transition
func RecordTransition(transition string) {
	TransitionCounter.With(prometheus.Labels{"transition": transition}).Inc()
}

// RecordMessageSent records a ledger append by sender kind
func RecordMessageSent(sender string) {
	MessageCounter.With(prometheus.Labels{"sender": sender}).Inc()
}

// UpdatePendingApplications updates the pending applications gauge
func UpdatePendingApplications(count int64) {
	PendingApplicationsGauge.Set(float64(count))
}
